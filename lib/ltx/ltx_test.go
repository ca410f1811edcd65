package ltx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xray-forge/xrf-go/lib/ltx"
)

func TestParseBasicSections(t *testing.T) {
	t.Parallel()

	src := "[a]\nx = 1\n; a comment\ny=2\n"
	doc, err := ltx.Parse("a.ltx", src, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)

	v, err := doc.Get("a", "x")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = doc.Get("a", "y")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestInheritanceResolution(t *testing.T) {
	t.Parallel()

	src := "[b]\ny=2\n[a]:b\nx=1\n"
	doc, err := ltx.Parse("a.ltx", src, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)

	v, err := doc.Get("a", "x")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = doc.Get("a", "y")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestInheritanceCycleFails(t *testing.T) {
	t.Parallel()

	src := "[a]:b\nx=1\n[b]:a\ny=2\n"
	_, err := ltx.Parse("a.ltx", src, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.Error(t, err)
}

func TestIncludeResolution(t *testing.T) {
	t.Parallel()

	loader := ltx.MapLoader{
		"other.ltx": "[s]\nk=v\n",
	}
	src := "#include \"other.ltx\"\n"
	doc, err := ltx.Parse("parent.ltx", src, loader, ltx.DefaultParseOptions())
	require.NoError(t, err)

	v, err := doc.Get("s", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestIncludeCycleFails(t *testing.T) {
	t.Parallel()

	loader := ltx.MapLoader{
		"a.ltx": "#include \"b.ltx\"\n",
		"b.ltx": "#include \"a.ltx\"\n",
	}
	_, err := ltx.Parse("a.ltx", loader["a.ltx"], loader, ltx.DefaultParseOptions())
	require.Error(t, err)
}

func TestFormatIdempotent(t *testing.T) {
	t.Parallel()

	src := "[a]:b\nx = 1\n[b]\ny = 2\n"
	doc, err := ltx.Parse("a.ltx", src, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)

	firstPass := ltx.Format(doc, ltx.DefaultWriteOptions())

	doc2, err := ltx.Parse("a.ltx", firstPass, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)
	secondPass := ltx.Format(doc2, ltx.DefaultWriteOptions())

	assert.Equal(t, firstPass, secondPass)
}

func TestSchemeVerifyRequiredAndStrict(t *testing.T) {
	t.Parallel()

	schemeSrc := "[weapon_scheme]\nstrict = true\ndamage = int,required\nname = string\n"
	schemeDoc, err := ltx.Parse("s.scheme.ltx", schemeSrc, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)
	table := ltx.NewSchemeTable(schemeDoc)

	dataSrc := "[ak74]\n$scheme = weapon_scheme\nname = AK-74\nunknown_field = xyz\n"
	dataDoc, err := ltx.Parse("d.ltx", dataSrc, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)

	errs := ltx.Verify(dataDoc, table)
	require.Len(t, errs, 2)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Field)
	}
	assert.Contains(t, msgs, "damage")
	assert.Contains(t, msgs, "unknown_field")
}

func TestSchemeVerifyTypeMismatch(t *testing.T) {
	t.Parallel()

	schemeSrc := "[s]\ncount = int\n"
	schemeDoc, err := ltx.Parse("s.scheme.ltx", schemeSrc, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)
	table := ltx.NewSchemeTable(schemeDoc)

	dataSrc := "[sec]\n$scheme = s\ncount = not-a-number\n"
	dataDoc, err := ltx.Parse("d.ltx", dataSrc, ltx.MapLoader{}, ltx.DefaultParseOptions())
	require.NoError(t, err)

	errs := ltx.Verify(dataDoc, table)
	require.Len(t, errs, 1)
	assert.Equal(t, "count", errs[0].Field)
}

func TestProjectFormatAndVerify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir+"/weapons.scheme.ltx", "[weapon_scheme]\nstrict = true\ndamage = int,required\n")
	writeFile(t, dir+"/weapons.ltx", "[ak74]\n$scheme = weapon_scheme\ndamage = 40\n")

	proj, err := ltx.LoadProject(dir)
	require.NoError(t, err)
	require.Len(t, proj.DataFiles, 1)

	verifySummary := proj.VerifyAll(testContext())
	assert.Equal(t, 0, verifySummary.Failed)
	assert.Equal(t, 0, verifySummary.BadFiles)

	formatSummary := proj.FormatAll(testContext(), false)
	assert.Equal(t, 0, formatSummary.Failed)
}

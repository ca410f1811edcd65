package dds

import "encoding/binary"

// rgb565 packs 8-bit channels down to a 5:6:5 word, matching the BC1/BC3
// endpoint encoding.
func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func unpack565(v uint16) (r, g, b uint8) {
	r = uint8(v>>11&0x1f) << 3
	g = uint8(v>>5&0x3f) << 2
	b = uint8(v&0x1f) << 3
	return
}

// encodeColorBlock compresses one 4x4 block of RGBA pixels into the 8-byte
// BC1 color block shared by DXT1 and DXT5: two RGB565 endpoints picked from
// the block's per-channel min/max, then sixteen 2-bit palette indices.
// This is a simple min/max compressor, not an optimal one — it favors
// correctness and speed over ratio, which is enough for icon atlases.
func encodeColorBlock(px [16][4]uint8) [8]byte {
	var minR, minG, minB uint8 = 255, 255, 255
	var maxR, maxG, maxB uint8
	for _, p := range px {
		if p[0] < minR {
			minR = p[0]
		}
		if p[1] < minG {
			minG = p[1]
		}
		if p[2] < minB {
			minB = p[2]
		}
		if p[0] > maxR {
			maxR = p[0]
		}
		if p[1] > maxG {
			maxG = p[1]
		}
		if p[2] > maxB {
			maxB = p[2]
		}
	}

	c0 := rgb565(maxR, maxG, maxB)
	c1 := rgb565(minR, minG, minB)
	if c0 == c1 {
		// Force the four-color interpolation mode even for flat blocks.
		if c0 > 0 {
			c1--
		} else {
			c0++
		}
	}

	pr0, pg0, pb0 := unpack565(c0)
	pr1, pg1, pb1 := unpack565(c1)
	palette := [4][3]int{
		{int(pr0), int(pg0), int(pb0)},
		{int(pr1), int(pg1), int(pb1)},
		{(2*int(pr0) + int(pr1)) / 3, (2*int(pg0) + int(pg1)) / 3, (2*int(pb0) + int(pb1)) / 3},
		{(int(pr0) + 2*int(pr1)) / 3, (int(pg0) + 2*int(pg1)) / 3, (int(pb0) + 2*int(pb1)) / 3},
	}

	var indices uint32
	for i, p := range px {
		best, bestDist := 0, 1<<30
		for ci, c := range palette {
			dr := int(p[0]) - c[0]
			dg := int(p[1]) - c[1]
			db := int(p[2]) - c[2]
			dist := dr*dr + dg*dg + db*db
			if dist < bestDist {
				best, bestDist = ci, dist
			}
		}
		indices |= uint32(best) << (uint(i) * 2)
	}

	var out [8]byte
	binary.LittleEndian.PutUint16(out[0:2], c0)
	binary.LittleEndian.PutUint16(out[2:4], c1)
	binary.LittleEndian.PutUint32(out[4:8], indices)
	return out
}

func decodeColorBlock(block [8]byte) (colors [4][3]uint8, indices [16]uint8) {
	c0 := binary.LittleEndian.Uint16(block[0:2])
	c1 := binary.LittleEndian.Uint16(block[2:4])
	r0, g0, b0 := unpack565(c0)
	r1, g1, b1 := unpack565(c1)
	colors[0] = [3]uint8{r0, g0, b0}
	colors[1] = [3]uint8{r1, g1, b1}
	colors[2] = [3]uint8{
		uint8((2*int(r0) + int(r1)) / 3),
		uint8((2*int(g0) + int(g1)) / 3),
		uint8((2*int(b0) + int(b1)) / 3),
	}
	colors[3] = [3]uint8{
		uint8((int(r0) + 2*int(r1)) / 3),
		uint8((int(g0) + 2*int(g1)) / 3),
		uint8((int(b0) + 2*int(b1)) / 3),
	}
	idx := binary.LittleEndian.Uint32(block[4:8])
	for i := 0; i < 16; i++ {
		indices[i] = uint8(idx>>(uint(i)*2)) & 0x3
	}
	return
}

// encodeAlphaBlock compresses one 4x4 block of alpha values into BC3's
// 8-byte alpha block: two 8-bit endpoints plus sixteen 3-bit indices into
// an 8-step interpolation ramp.
func encodeAlphaBlock(alpha [16]uint8) [8]byte {
	var minA, maxA uint8 = 255, 0
	for _, a := range alpha {
		if a < minA {
			minA = a
		}
		if a > maxA {
			maxA = a
		}
	}

	ramp := [8]int{int(maxA), int(minA)}
	for i := 1; i <= 6; i++ {
		ramp[1+i] = ((7-i)*int(maxA) + i*int(minA)) / 7
	}

	var out [8]byte
	out[0] = maxA
	out[1] = minA

	var bits uint64
	for i, a := range alpha {
		best, bestDist := 0, 1<<30
		for ri, r := range ramp {
			d := int(a) - r
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				best, bestDist = ri, d
			}
		}
		bits |= uint64(best) << (uint(i) * 3)
	}
	out[2] = byte(bits)
	out[3] = byte(bits >> 8)
	out[4] = byte(bits >> 16)
	out[5] = byte(bits >> 24)
	out[6] = byte(bits >> 32)
	out[7] = byte(bits >> 40)
	return out
}

func decodeAlphaBlock(block [8]byte) (ramp [8]uint8, indices [16]uint8) {
	a0, a1 := block[0], block[1]
	ramp[0], ramp[1] = a0, a1
	for i := 1; i <= 6; i++ {
		ramp[1+i] = uint8(((7-i)*int(a0) + i*int(a1)) / 7)
	}
	bits := uint64(block[2]) | uint64(block[3])<<8 | uint64(block[4])<<16 |
		uint64(block[5])<<24 | uint64(block[6])<<32 | uint64(block[7])<<40
	for i := 0; i < 16; i++ {
		indices[i] = uint8(bits>>(uint(i)*3)) & 0x7
	}
	return
}

package binpack

import "testing"

func BenchmarkPacker_InsertGlyphs(b *testing.B) {
	sizes := [][2]int{{7, 12}, {9, 14}, {5, 10}, {11, 13}, {3, 4}, {8, 16}}

	b.ReportAllocs()
	for b.Loop() {
		p := New(Rect{W: 512, H: 512})
		for i := 0; ; i++ {
			s := sizes[i%len(sizes)]
			if _, _, ok := p.Insert(s[0], s[1]); !ok {
				break
			}
		}
	}
}

func BenchmarkPacker_InsertAfterReset(b *testing.B) {
	p := New(Rect{W: 256, H: 256})

	b.ReportAllocs()
	for b.Loop() {
		p.Reset()
		for i := 0; i < 128; i++ {
			p.Insert(10, 12)
		}
	}
}

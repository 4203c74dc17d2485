package compress

import (
	"fmt"
	"testing"
)

func BenchmarkCodecs(b *testing.B) {
	data := payload(512 * 1024)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		if err != nil {
			b.Fatal(err)
		}
		packed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("%s/Compress", ct), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})

		b.Run(fmt.Sprintf("%s/Decompress", ct), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Decompress(packed, len(data))
			}
		})
	}
}

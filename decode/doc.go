// Package decode materializes a corpus batch as one of three in-memory representations.
//
// All decoders take the raw two-buffer encoding (a length sequence and a value buffer),
// validate it with corpus.Validate, and make a single forward pass over the lengths:
//
//   - Columnar builds an Apache Arrow String array: int32 offsets plus one shared copy of
//     the value buffer, so the i-th string is data[offsets[i]:offsets[i+1]]
//   - Tabular copies every string into its own allocation and pairs it with an integer
//     label 0..n-1, the way a dataframe series does
//   - List copies every string into its own allocation with no index at all
//
// The three decoders exist to be compared, so each keeps its allocation pattern even
// where a cheaper one would produce the same content.
//
// Every result implements Representation, which is enough to compare any two of them:
//
//	col, _ := decode.Columnar(lengths, values)
//	defer col.Release()
//	list, _ := decode.List(lengths, values)
//	if !decode.Equal(col, list) {
//	    // mismatch
//	}
package decode

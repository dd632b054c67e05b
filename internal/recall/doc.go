// Package recall retrieves knowledge passages from the external passage
// store and renders them into a bounded context block.
//
// The store is consumed as a black box over HTTP:
//
//	GET {base}/memory/recall?text=<query>&k=<int>[&domain=<string>]
//
// Result items come back in heterogeneous shapes (plain strings, objects,
// objects with a nested payload). Normalization is total: every returned
// Passage has non-empty text, falling back to the stringified raw item.
//
// Recall fails soft. A timeout, transport error, non-2xx status or malformed
// body yields an empty passage list and a log line, never an error to the
// caller; the pipeline degrades to answering without retrieved context.
package recall

// Package score computes precision, recall and F1 over multisets of
// evaluable units.
//
// Duplicate values are matched by occurrence: the k-th copy of a value in
// the predictions can only match the k-th copy in the ground truth.
//
//	m := score.MultisetF1(gold, predicted)
//	fmt.Println(m.F1)
package score

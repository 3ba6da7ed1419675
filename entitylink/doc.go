// Package entitylink scores entity-linking predictions against annotated
// documents.
//
// Input is JSON Lines, one document per line:
//
//	{"text": "...", "labels": [{"span": [0, 5], "entity_id": "Q90"}],
//	 "output": "<MENTION>Paris</MENTION>[LK][_CONTINUE_] ...", "output_qid": ["Q90"]}
//
// Each document contributes ground-truth units from its linked labels and
// predicted units from the mentions tagged in output, paired positionally
// with output_qid. Labels carrying the unknown entity id are not scored;
// a predicted mention with the same surface form consumes one of them and
// is dropped instead of counting as a false positive. Units from all
// documents are scored together with score.MultisetF1.
package entitylink

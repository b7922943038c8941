// Package intent turns natural-language commands into device actions.
//
// The Classifier interface is the extension point: the built-in
// RuleClassifier does keyword matching over a fixed set of device
// namespaces, and a richer NLP-backed implementation can be swapped in
// without touching the dispatch path.
//
// Classification is pure string work. It never consults the hub, so the
// same command always yields the same actions in the same order.
package intent

// Package vocab defines the core data model of the application: analysis
// results produced by the generation service, the vocabulary items they
// contain, and the saved records (analyses, folders, notes) the user keeps
// locally and remotely.
package vocab

// Package services implements the driving ports by orchestrating domain
// logic over the driven ports. Services hold no infrastructure code: they
// receive stores, sources and the embedding service via constructor
// injection and coordinate indexing passes and similarity searches.
package services

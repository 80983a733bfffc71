// Package siteconfig generates, validates and stores site configurations for
// local service businesses.
//
// A site configuration starts as a candidate: either a structured form or the
// output of a text-generation service (see the generator subpackage). Every
// candidate goes through Normalize, which fills defaults and clamps
// collections, and then Validate, which reports every broken invariant at
// once. Only valid candidates reach the Repository. Repository
// implementations (memory, Postgres, a Redis-cached decorator) live under
// repo/, blob stores for published snapshots under storage/, and event sinks
// under events/.
//
// Identity
//
// A record's slug, niche and templateId are fixed at creation. Update
// accepts a Patch and always restores those three fields from the stored
// record, whatever the patch contains.
//
// Concurrency
//
// Slug uniqueness is enforced by the store, so concurrent creates of the
// same slug yield exactly one record and ErrDuplicateIdentity for the rest.
// Updates carry no version token and are last-write-wins.
package siteconfig

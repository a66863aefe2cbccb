// Package derive decides a record's default script, default region and
// BCP-47 tag from the loaded sources.
//
// Script and region are each decided by an ordered list of rules. The
// first rule that yields a value wins; a literal default applies when
// none does. New sources are added by inserting a rule, not by editing
// the existing ones.
package derive

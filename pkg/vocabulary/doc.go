/*
Package vocabulary turns raw word lists into prediction entries.

Sources (files, Redis, memory) hand back untyped entries in insertion order.
Decode validates each one on its own: a pair ["casa", 10] or a map
{word: casa, frequency: 10} becomes a domain.Entry, anything else is reported
and skipped without aborting the rest of the list.

The package also embeds the default Spanish vocabulary (Builtin) and a
file-backed source (FileSource) that can watch its file for changes.
*/
package vocabulary

/*
Package nodeid generates and parses identifiers for view-model nodes.

Generated ids are opaque digit strings that are only expected to be unique
among the siblings of one tree. Caller supplied ids must be a single segment of
letters, digits, '_' or '-'.

An Address is the dotted sequence of ids leading from a root node to one of
its descendants, e.g. `4711023.9823412` or `main.wizard`.
*/
package nodeid

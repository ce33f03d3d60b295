/*
Package file reads and writes models, corpora and classification results on the
local filesystem.

Models are stored in a sectioned text layout by default:

	initial: 2
	0.6 0.4

	transition: 2
	0.7 0.3
	0.4 0.6

	observation: 2
	0.5 0.1
	0.5 0.9

Files ending in .yaml, .yml or .json use those encodings instead. Writes are atomic.
*/
package file

// Package solution reads the member projects declared in a solution file.
//
// Solution files are line-oriented text, not markup, so members are
// recognised with a tolerant pattern rather than a full parser.
package solution

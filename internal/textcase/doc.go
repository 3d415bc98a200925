// Package textcase applies line-wise case transforms to raw list content.
//
// Each line is transformed independently so existing line breaks survive;
// blank lines pass through untouched.
package textcase

// Package util provides small helpers shared by the discord-oauth packages
// that don't belong to any one of them.
//
// Key utilities:
//   - SafeTruncate: bounds upstream response bodies rendered in error messages
package util

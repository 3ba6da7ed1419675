// Package util provides small generic helpers shared by the chatseg
// packages: defaults and multiset slice operations.
package util

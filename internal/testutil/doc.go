// Package testutil holds helpers shared by package tests. It must not import
// any other internal package so that every package can use it from its own
// tests.
package testutil

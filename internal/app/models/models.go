// Package models holds the store entities of the alumni portal.
//
// Identity and profile are separate values: a User may exist without an
// Alumni profile (staff accounts), but an Alumni always references a User.
package models

// Package testutil provides a fake Discord API server and response fixtures
// for testing code built on discord-oauth.
package testutil

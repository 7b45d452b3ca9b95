// Package env overlays environment variables onto stored settings.
//
// Variables are read at every Apply so a restarted process, or a test using
// t.Setenv, always sees the current environment. A .env file in the working
// directory is loaded once by LoadDotEnv; real environment variables win.
package env

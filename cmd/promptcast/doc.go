// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

// Command promptcast casts a prompt into a typed value from the shell.
//
// Usage:
//
//	promptcast cast -op bool -prompt "Is the Atlantic larger than the Baltic?"
//	promptcast cast -op categorize -prompt "My favorite color is red" -values "red,blue,green"
//	promptcast cast -op list -prompt "Name some rock bands" -max 3
//	promptcast cast -op cast -prompt "What is 2+2?" -schema '{"kind":"number"}'
//	promptcast cast -op text -prompt "Summarize the plot of Hamlet" -high
//	promptcast health
//	promptcast version
//
// Configuration is loaded from defaults, an optional YAML file (-config),
// and PROMPTCAST_* environment variables, in that order. The result is
// printed to stdout as JSON.
package main

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, rootOpts := newRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportFailure(rootOpts, os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportFailure prints err through the user logger, or as a plain log line when
// the command failed before the user logger was set up
func reportFailure(o *opts.RootOpts, stderr io.Writer, err error) {
	if o.UserLogger != nil {
		o.UserLogger.LogValidation(false, "Command failed", err)
		return
	}
	logger := zerolog.New(stderr)
	logger.Error().Err(err).Msg("command failed")
}

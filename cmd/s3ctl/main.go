/*
Copyright 2024 Scality, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
	"github.com/scality/s3control-cli/pkg/osperrors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigs
		klog.InfoS("Signal received", "type", sig)
		cancel() // Trigger context cancellation

		select {
		case <-ctx.Done():
			klog.V(constants.LvlDefault).InfoS("s3ctl interrupted, context canceled")
		case <-time.After(10 * time.Second):
			klog.ErrorS(nil, "s3ctl did not stop after 10 seconds, forcing exit")
			os.Exit(constants.ExitGeneric)
		}
	}()

	// Call the run function (defined in cmd.go)
	if err := run(ctx, os.Args[1:]); err != nil {
		klog.ErrorS(err, "s3ctl command failed")
		klog.Flush()

		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(osperrors.ExitCode(status.Code(err)))
	}
}

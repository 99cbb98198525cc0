// pearpass-native-host is a demo wiring of the pairing and session-channel
// core described in SPEC_FULL.md. It constructs a Core over an in-memory
// KV store, prints the host's pairing code, and then blocks until SIGINT or
// SIGTERM. The Core is not reachable from outside the process.
//
// This binary is explicitly NOT a native-messaging transport: it does not
// read length-prefixed frames from stdin, spawn as a browser-managed
// process, or speak the native-messaging wire protocol. Wiring this core to
// a real transport is the surrounding application's job; see SPEC_FULL.md
// §1 Non-goals.
//
// Usage:
//
//	pearpass-native-host [options]
//
// Options:
//
//	-native-messaging  Enable native-messaging-gated operations (default: true)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pearpass/native-core/pkg/kvstore"
	"github.com/pearpass/native-core/pkg/rpc"
	"github.com/pion/logging"
)

func main() {
	nativeMessaging := flag.Bool("native-messaging", true, "enable native-messaging-gated operations")
	flag.Parse()

	loggerFactory := logging.NewDefaultLoggerFactory()
	logger := loggerFactory.NewLogger("pearpass-native-host")

	core := rpc.NewCore(rpc.Config{
		KV:                     kvstore.NewMemory(),
		LoggerFactory:          loggerFactory,
		NativeMessagingEnabled: func() bool { return *nativeMessaging },
	})

	code, err := core.PairingCode(context.Background())
	if err != nil {
		logger.Errorf("failed to derive pairing code: %v", err)
		os.Exit(1)
	}

	fmt.Printf("pairing code: %s\n", code)
	logger.Info("host ready; waiting for SIGINT/SIGTERM")

	waitForSignal(logger)
}

func waitForSignal(logger logging.LeveledLogger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Infof("received signal: %v", sig)
}

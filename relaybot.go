// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"

	"github.com/docopt/docopt-go"
	"github.com/okzk/sdnotify"

	"github.com/relaybot/relaybot/irc"
	"github.com/relaybot/relaybot/irc/flock"
	"github.com/relaybot/relaybot/irc/logger"
	"github.com/relaybot/relaybot/irc/utils"
)

// set via linker flags, either by make or by goreleaser:
var commit = ""  // git hash
var version = "" // tagged version

func main() {
	irc.SetVersionString(version, commit)
	usage := `relaybot.
Usage:
	relaybot run [--conf <filename>] [--quiet]
	relaybot checkconfig [--conf <filename>]
	relaybot -h | --help
	relaybot --version
Options:
	--conf <filename>  Configuration file to use [default: relaybot.yaml].
	--quiet            Don't show incoming traffic or startup/shutdown lines.
	-h --help          Show this screen.
	--version          Show version.`

	arguments, _ := docopt.ParseArgs(usage, nil, irc.Ver)

	configfile := arguments["--conf"].(string)
	config, err := irc.LoadConfig(configfile)
	if err != nil {
		log.Fatal("Config file did not load successfully: ", err.Error())
	}

	if arguments["checkconfig"].(bool) {
		fmt.Printf("%s: OK (%s as %s, %d channels)\n", configfile, config.Address(), config.Nickname, len(config.Channels))
		return
	}

	quiet := arguments["--quiet"].(bool)
	logman, err := logger.NewManager(config.Logging)
	if err != nil {
		log.Fatal("Logger did not load successfully:", err.Error())
	}
	defer logman.Close()

	lock, err := flock.TryAcquireFlock(config.LockFile)
	if err != nil {
		logman.Error("server", "could not acquire lock file", err.Error())
		os.Exit(1)
	}
	defer lock.Unlock()

	if !quiet {
		logman.Info("server", fmt.Sprintf("%s starting", irc.Ver))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sink irc.Sink = irc.LogSink{Logger: logman}
	if config.DisplayEnabled() && !quiet {
		sink = irc.MultiSink{irc.NewTerminalSink(os.Stdout, config.Display.Color), sink}
	}

	var relay *irc.Relay
	if config.Relay.Enabled {
		relay = irc.NewRelay(config.Relay.QueueLength, config.Relay.MaxSendQBytes, config.Channels, logman)
		listener, err := net.Listen("tcp", config.Relay.Listen)
		if err != nil {
			logman.Error("relay", "could not listen on", config.Relay.Listen, err.Error())
			os.Exit(1)
		}
		logman.Info("relay", "accepting relay lines on", listener.Addr().String())
		go func() {
			if err := relay.Serve(ctx, listener); err != nil {
				logman.Error("relay", "intake listener failed", err.Error())
			}
		}()
	}

	bot := irc.NewBot(config, logman, sink, relay)
	bot.OnRegistered = func(nick string) {
		sdnotify.Ready()
		sdnotify.Status(fmt.Sprintf("registered on %s as %s", config.Address(), nick))
	}

	signals := make(chan os.Signal, len(utils.ExitSignals))
	signal.Notify(signals, utils.ExitSignals...)
	rehash := make(chan os.Signal, 1)
	if len(utils.RehashSignals) != 0 {
		signal.Notify(rehash, utils.RehashSignals...)
	}
	go func() {
		for {
			select {
			case <-signals:
				logman.Info("server", "received exit signal, shutting down")
				sdnotify.Stopping()
				cancel()
				return
			case <-rehash:
				rehashLogging(configfile, logman)
			case <-ctx.Done():
				return
			}
		}
	}()

	bot.Run(ctx)
	if !quiet {
		logman.Info("server", fmt.Sprintf("%s exiting", irc.Ver))
	}
}

// rehashLogging reloads the config file and applies its logging section;
// connection settings only take effect on restart.
func rehashLogging(configfile string, logman *logger.Manager) {
	config, err := irc.LoadConfig(configfile)
	if err != nil {
		logman.Error("config", "rehash failed, keeping the old configuration", err.Error())
		return
	}
	if err := logman.ApplyConfig(config.Logging); err != nil {
		logman.Error("config", "could not apply logging configuration", err.Error())
		return
	}
	logman.Info("config", "logging configuration reloaded from", configfile)
}

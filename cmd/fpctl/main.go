package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/fpctl/pkg/env"
	fx "github.com/robotalks/fpctl/pkg/framework"
	"github.com/robotalks/fpctl/pkg/prompt"
	"github.com/robotalks/fpctl/pkg/sensor"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.Default()
	src, err := prompt.New(prompt.DefaultPrompt)
	if err != nil {
		glog.Exitf("console: %v", err)
	}
	session, err := conf.NewSession(src, nil)
	if err != nil {
		glog.Exit(err)
	}

	runnables := []fx.Runnable{fx.NamedRun("session", session)}
	pub, err := conf.NewPublisher()
	if err != nil {
		glog.Exit(err)
	}
	if pub != nil {
		session.Reporter = pub
		runnables = append(runnables, fx.NamedRun("publisher", pub))
	}

	err = fx.NewRunner().HandleSignals().Go(runnables...).Wait()
	switch err {
	case nil, sensor.ErrNoMoreCommands:
	default:
		glog.Exit(err)
	}
}

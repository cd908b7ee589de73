package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/deorbit/deorbit"
	"github.com/deorbit/deorbit/metrics"
	kitlog "github.com/go-kit/kit/log"
)

// This code reads the scenario file, propagates the satellite until it crashes or the time runs out.

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario    string
	metricsAddr string
	verbose     bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "simulation scenario TOML file")
	flag.StringVar(&metricsAddr, "metrics", "", "address to serve Prometheus metrics on (e.g. :9090), disabled if empty")
	flag.BoolVar(&verbose, "verbose", false, "log the propagation status")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	sc, err := deorbit.ReadScenario(scenario)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if verbose {
		log.Printf("[conf] %+v", sc.Simulation)
	}

	if metricsAddr != "" {
		ln, err := net.Listen("tcp", metricsAddr)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("metrics server listening at %s", ln.Addr())
		go serveMetrics(ln)
	}

	logger := kitlog.NewNopLogger()
	if verbose {
		logger = deorbit.NewLogger()
	}
	m, err := deorbit.NewMission(sc.Simulation, deorbit.Earth, sc.Satellite, logger)
	if err != nil {
		log.Fatalf("%s: %s", scenario, err)
	}
	m.Epoch = sc.Epoch

	exp, err := deorbit.NewExporter(sc.Export)
	if err != nil {
		log.Fatalf("could not create output: %s", err)
	}
	out, err := m.Propagate(exp)
	if err != nil {
		log.Fatalf("propagation failed after %.3f s: %s", out.Elapsed, err)
	}

	switch out.Status {
	case deorbit.Crashed:
		fmt.Printf("The satellite has successfully %s after %.3f s!\n", out.Status, out.Elapsed)
	default:
		fmt.Printf("The satellite %s within the specified time.\n", out.Status)
	}
	if !sc.Export.IsUseless() {
		fmt.Printf("%d records written.\n", out.Records)
	}

	if metricsAddr != "" {
		// Keep the metrics available until interrupted.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
	}
}

// serveMetrics blocks serving the Prometheus handler on ln and logs why it stopped.
func serveMetrics(ln net.Listener) {
	if err := http.Serve(ln, metrics.Handler()); err != nil {
		log.Printf("metrics server stopped: %s", err)
	}
}

// Command ident-beacon publishes a device identification so privacyscan can
// find it.
//
// It encodes the device's type, brand, model and collected-data categories
// as a marker label and an Eddystone UID instance id, prints both together
// with the advertisement payload a BLE beacon should send, and advertises the
// label as a DNS-SD service on the local network.
//
// Usage:
//
//	ident-beacon [flags]
//
// Flags:
//
//	-type string           Device type key (default "CAMERA")
//	-brand string          Brand key (default "ARLO")
//	-model string          Model key (default "ARLO")
//	-categories string     Comma-separated category keys (default "AUDIO,VIDEO")
//	-name string           Device name (default "IDENT-<TYPE>")
//	-instance-name string  DNS-SD instance name (default: the device name)
//	-port int              Advertised port (default 80)
//	-iface string          Network interface to advertise on (default: all)
//	-namespace string      UID namespace, 20 hex or up to 10 ASCII characters
//	-tx-power int          Calibrated TX power at 0 m (default -21)
//	-tables string         Lookup table file (default: built-in English tables)
//	-advertise             Advertise on the network (default true)
//	-log-level string      Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Print the beacon payload for a doorbell without advertising
//	ident-beacon -type DOORBELL -brand RING -model VIDEO -categories AUDIO,VIDEO,PRESENCE -advertise=false
//
//	# Advertise a thermostat on eth0
//	ident-beacon -type THERMOSTAT -brand NEST -model LEARNING -categories PRESENCE,INFORMATION -iface eth0
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mjstratton7/PrivacyScan/pkg/discovery"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Config holds the command configuration.
type Config struct {
	Type         string
	Brand        string
	Model        string
	Categories   string
	Name         string
	InstanceName string
	Port         int
	Interface    string
	Namespace    string
	TxPower      int
	Tables       string
	Advertise    bool
	LogLevel     string
}

var config Config

func init() {
	flag.StringVar(&config.Type, "type", "CAMERA", "Device type key")
	flag.StringVar(&config.Brand, "brand", "ARLO", "Brand key")
	flag.StringVar(&config.Model, "model", "ARLO", "Model key")
	flag.StringVar(&config.Categories, "categories", "AUDIO,VIDEO", "Comma-separated category keys")
	flag.StringVar(&config.Name, "name", "", "Device name (default \"IDENT-<TYPE>\")")
	flag.StringVar(&config.InstanceName, "instance-name", "", "DNS-SD instance name (default: the device name)")
	flag.IntVar(&config.Port, "port", discovery.DefaultPort, "Advertised port")
	flag.StringVar(&config.Interface, "iface", "", "Network interface to advertise on (default: all)")
	flag.StringVar(&config.Namespace, "namespace", "privacyscn", "UID namespace, 20 hex or up to 10 ASCII characters")
	flag.IntVar(&config.TxPower, "tx-power", -21, "Calibrated TX power at 0 m")
	flag.StringVar(&config.Tables, "tables", "", "Lookup table file (default: built-in English tables)")
	flag.BoolVar(&config.Advertise, "advertise", true, "Advertise on the network")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if err := validateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if config.Name == "" {
		config.Name = "IDENT-" + config.Type
	}

	t := tables.Builtin()
	if config.Tables != "" {
		var err error
		if t, err = tables.Load(config.Tables); err != nil {
			log.Fatalf("Failed to load tables: %v", err)
		}
	}

	id, err := buildIdentity(t, config.Type, config.Brand, config.Model, splitKeys(config.Categories))
	if err != nil {
		log.Fatalf("Failed to build identity: %v", err)
	}

	ns, err := parseNamespace(config.Namespace)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	payload, err := id.Payload(config.Name, int8(config.TxPower), ns)
	if err != nil {
		log.Fatalf("Failed to build payload: %v", err)
	}

	printIdentity(id, payload)

	if !config.Advertise {
		return
	}

	advCfg := discovery.DefaultAdvertiserConfig()
	advCfg.Interface = config.Interface
	adv, err := discovery.NewMDNSAdvertiser(advCfg)
	if err != nil {
		log.Fatalf("Failed to create advertiser: %v", err)
	}
	adv.SetLogger(newLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	info := &discovery.IdentInfo{
		InstanceName: config.InstanceName,
		Label:        id.Label,
		Name:         config.Name,
		Port:         uint16(config.Port),
	}
	if err := adv.Advertise(ctx, info); err != nil {
		log.Fatalf("Failed to advertise: %v", err)
	}
	log.Printf("Advertising %s as %s on port %d", discovery.ServiceType, config.Name, config.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("Received signal: %v", sig)
	adv.StopAll()
	log.Println("Goodbye!")
}

func validateConfig() error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", config.Port)
	}
	if config.TxPower < -128 || config.TxPower > 127 {
		return fmt.Errorf("tx power must be -128 to 127, got %d", config.TxPower)
	}
	if len(config.InstanceName) > discovery.MaxInstanceNameLen {
		return discovery.ErrInstanceNameTooLong
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printIdentity(id *Identity, payload []byte) {
	fmt.Println("============================================")
	fmt.Println("            DEVICE IDENTIFICATION           ")
	fmt.Println("============================================")
	fmt.Printf("  Device:      %s\n", id.Record)
	fmt.Printf("  Label:       %s\n", id.Label)
	fmt.Printf("  Instance ID: %s\n", id.InstanceID)
	fmt.Printf("  Beacon name: %s\n", config.Name)
	fmt.Printf("  Payload:     %s\n", hex.EncodeToString(payload))
	fmt.Println("============================================")
}

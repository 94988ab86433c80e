package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// POSConfig holds floor-level policy that operators tune without a redeploy:
// receipt cosmetics and the tax defaults applied to hotels that have not
// configured their own rates yet.
type POSConfig struct {
	Receipt  ReceiptConfig `mapstructure:"receipt"`
	Defaults TaxDefaults   `mapstructure:"defaults"`
	Kitchen  KitchenConfig `mapstructure:"kitchen"`
}

type ReceiptConfig struct {
	CurrencySymbol string `mapstructure:"currencySymbol"`
	FooterText     string `mapstructure:"footerText"`
}

type TaxDefaults struct {
	GSTPercent           float64 `mapstructure:"gstPercent"`
	ServiceChargePercent float64 `mapstructure:"serviceChargePercent"`
}

type KitchenConfig struct {
	TicketPrefix string `mapstructure:"ticketPrefix"`
}

func DefaultPOSConfig() POSConfig {
	return POSConfig{
		Receipt: ReceiptConfig{
			CurrencySymbol: "₹",
			FooterText:     "Thank you, visit again!",
		},
		Defaults: TaxDefaults{
			GSTPercent:           5,
			ServiceChargePercent: 0,
		},
		Kitchen: KitchenConfig{
			TicketPrefix: "KOT",
		},
	}
}

// POSConfigHolder exposes the current POS policy and hot-reloads it when the
// config file changes on disk.
type POSConfigHolder struct {
	current atomic.Value // holds POSConfig
}

func NewPOSConfigHolder() (*POSConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pos")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/tavolo/config")
	v.AddConfigPath("/etc/tavolo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TAVOLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &POSConfigHolder{}
	holder.current.Store(DefaultPOSConfig())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return holder, nil
	}

	if cfg, err := unmarshalPOS(v); err == nil {
		holder.current.Store(cfg)
	} else {
		log.Printf("pos config: %v, using defaults", err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalPOS(v)
		if err != nil {
			log.Printf("pos config reload: %v, keeping previous", err)
			return
		}
		holder.current.Store(cfg)
	})
	v.WatchConfig()

	return holder, nil
}

func (h *POSConfigHolder) Current() POSConfig {
	if h == nil {
		return DefaultPOSConfig()
	}
	if cfg, ok := h.current.Load().(POSConfig); ok {
		return cfg
	}
	return DefaultPOSConfig()
}

func unmarshalPOS(v *viper.Viper) (POSConfig, error) {
	cfg := DefaultPOSConfig()
	if err := v.UnmarshalKey("pos", &cfg); err != nil {
		return POSConfig{}, err
	}
	if strings.TrimSpace(cfg.Kitchen.TicketPrefix) == "" {
		cfg.Kitchen.TicketPrefix = "KOT"
	}
	return cfg, nil
}

package service

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBPath    string
	CacheSize int
	Workers   int
	Params    Params
}

// LoadConfig reads QUEST_* environment variables over the defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("quest")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := DefaultParams()
	v.SetDefault("db_path", "./data/commitments.db")
	v.SetDefault("cache_size", 128)
	v.SetDefault("workers", 1)
	v.SetDefault("distance", d.Distance)
	v.SetDefault("earth_radius", d.EarthRadius)
	v.SetDefault("step", d.Step)
	v.SetDefault("hash", d.Hash)
	v.SetDefault("leaf_encoding", d.LeafEncoding)
	v.SetDefault("pair_order", d.PairOrder)
	v.SetDefault("odd_node", d.OddNode)

	return &Config{
		DBPath:    v.GetString("db_path"),
		CacheSize: v.GetInt("cache_size"),
		Workers:   v.GetInt("workers"),
		Params: Params{
			Distance:     v.GetFloat64("distance"),
			EarthRadius:  v.GetFloat64("earth_radius"),
			Step:         v.GetFloat64("step"),
			Hash:         v.GetString("hash"),
			LeafEncoding: v.GetString("leaf_encoding"),
			PairOrder:    v.GetString("pair_order"),
			OddNode:      v.GetString("odd_node"),
		},
	}
}

package ig

import (
	"github.com/lintang-b-s/frustration-ig/pkg/localsearch"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"github.com/spf13/viper"
)

const (
	DEFAULT_BETA       = 0.3
	DEFAULT_MAX_ITER   = 2000
	DEFAULT_ACCEPTANCE = "better"
	DEFAULT_ALPHA      = 0.99
	DEFAULT_SEED       = 1
	DEFAULT_NODE_ORDER = "random"
)

type Config struct {
	Beta       float64 `mapstructure:"beta" json:"beta" validate:"gt=0,lte=1"`
	MaxIter    int     `mapstructure:"max_iter" json:"max_iter" validate:"min=1"`
	Acceptance string  `mapstructure:"acceptance" json:"acceptance" validate:"oneof=better metropolis"`
	Alpha      float64 `mapstructure:"alpha" json:"alpha" validate:"gt=0,lte=1"`
	Seed       uint64  `mapstructure:"seed" json:"seed"`
	NodeOrder  string  `mapstructure:"node_order" json:"node_order" validate:"oneof=random degree"`
	MaxPasses  int     `mapstructure:"max_passes" json:"max_passes" validate:"min=1"`
}

func DefaultConfig() Config {
	return Config{
		Beta:       DEFAULT_BETA,
		MaxIter:    DEFAULT_MAX_ITER,
		Acceptance: DEFAULT_ACCEPTANCE,
		Alpha:      DEFAULT_ALPHA,
		Seed:       DEFAULT_SEED,
		NodeOrder:  DEFAULT_NODE_ORDER,
		MaxPasses:  localsearch.DEFAULT_MAX_PASSES,
	}
}

// ConfigFromViper. the "ig" section of the config file / IG_IG_* env variables, on top of the defaults.
func ConfigFromViper() Config {
	viper.SetDefault("ig.beta", DEFAULT_BETA)
	viper.SetDefault("ig.max_iter", DEFAULT_MAX_ITER)
	viper.SetDefault("ig.acceptance", DEFAULT_ACCEPTANCE)
	viper.SetDefault("ig.alpha", DEFAULT_ALPHA)
	viper.SetDefault("ig.seed", DEFAULT_SEED)
	viper.SetDefault("ig.node_order", DEFAULT_NODE_ORDER)
	viper.SetDefault("ig.max_passes", localsearch.DEFAULT_MAX_PASSES)

	return Config{
		Beta:       viper.GetFloat64("ig.beta"),
		MaxIter:    viper.GetInt("ig.max_iter"),
		Acceptance: viper.GetString("ig.acceptance"),
		Alpha:      viper.GetFloat64("ig.alpha"),
		Seed:       viper.GetUint64("ig.seed"),
		NodeOrder:  viper.GetString("ig.node_order"),
		MaxPasses:  viper.GetInt("ig.max_passes"),
	}
}

func (c Config) Validate() error {
	if msgs := util.ValidateStruct(c); len(msgs) > 0 {
		return util.NewErrorf(util.ErrConfig, "invalid iterated greedy config: %s", util.JoinMessages(msgs))
	}
	return nil
}

package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type KubernetesConfig struct {
	KubeConfigPath string `mapstructure:"kubeconfig_path"`
	InCluster      bool   `mapstructure:"in_cluster"`
	Namespace      string `mapstructure:"namespace"`
	// TimeoutSeconds bounds every orchestrator call; a timed-out call is
	// reported as orchestrator-unavailable instead of hanging the request.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// PoolsConfig describes the two managed pools and the strategy split table.
// The rolling and canary blue counts are illustrative defaults, kept
// configurable rather than hard-wired.
type PoolsConfig struct {
	TotalPods       int32  `mapstructure:"total_pods"`
	AppLabel        string `mapstructure:"app_label"`         // label selector matching managed pods
	VersionLabelKey string `mapstructure:"version_label_key"` // pod label carrying "blue" / "green"
	ChaosLabelKey   string `mapstructure:"chaos_label_key"`   // presence marks a pod as chaos-injected
	BlueDeployment  string `mapstructure:"blue_deployment"`
	GreenDeployment string `mapstructure:"green_deployment"`
	RollingBluePods int32  `mapstructure:"rolling_blue_pods"`
	CanaryBluePods  int32  `mapstructure:"canary_blue_pods"`
	// CacheTTLSeconds is the pod inventory cache lifetime.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Kubernetes KubernetesConfig `mapstructure:"kubernetes"`
	Pools      PoolsConfig      `mapstructure:"pools"`
}

var cfg *Config

func GetConfig() *Config {
	return cfg
}

func InitConfig(configName string, configPath string) (Config, error) {
	var c Config
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "rollout_config"
	}
	viper.AddConfigPath(GetAbsPath("config"))
	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("ROLLOUT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}
	applyDefaults(&c)
	cfg = &c
	return c, nil
}

func applyDefaults(c *Config) {
	if c.Pools.TotalPods == 0 {
		c.Pools.TotalPods = 10
	}
	if c.Pools.RollingBluePods == 0 {
		c.Pools.RollingBluePods = 3
	}
	if c.Pools.CanaryBluePods == 0 {
		c.Pools.CanaryBluePods = 8
	}
	if c.Pools.AppLabel == "" {
		c.Pools.AppLabel = "app=rollout-demo"
	}
	if c.Pools.VersionLabelKey == "" {
		c.Pools.VersionLabelKey = "version"
	}
	if c.Pools.ChaosLabelKey == "" {
		c.Pools.ChaosLabelKey = "chaos"
	}
	if c.Pools.BlueDeployment == "" {
		c.Pools.BlueDeployment = "rollout-demo-blue"
	}
	if c.Pools.GreenDeployment == "" {
		c.Pools.GreenDeployment = "rollout-demo-green"
	}
	if c.Pools.CacheTTLSeconds == 0 {
		c.Pools.CacheTTLSeconds = 2
	}
	if c.Kubernetes.TimeoutSeconds == 0 {
		c.Kubernetes.TimeoutSeconds = 5
	}
	if c.Kubernetes.Namespace == "" {
		c.Kubernetes.Namespace = "default"
	}
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}

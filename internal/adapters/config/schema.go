package config

// Options is the structure of the dockerbuild.yaml option file.
// Zero values leave the built-in default in place.
type Options struct {
	UnprivUser   string `yaml:"unpriv_user"`
	UnprivGroup  string `yaml:"unpriv_group"`
	Timeout      int    `yaml:"timeout" validate:"omitempty,min=1"`
	Architecture string `yaml:"architecture" validate:"omitempty,oneof=amd64 i386 armhf arm64"`
	LogFormat    string `yaml:"log_format" validate:"omitempty,oneof=auto pretty json"`
	GitHubAPIURL string `yaml:"github_api_url" validate:"omitempty,url"`
	ScriptsDir   string `yaml:"scripts_dir"`
}

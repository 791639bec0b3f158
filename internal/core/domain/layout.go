package domain

const (
	// ConfigFileName is the name of the optional option file looked up in the working directory.
	ConfigFileName = "dockerbuild.yaml"

	// EnvPrefix is the prefix of environment variables referenced by !Env in the option file.
	EnvPrefix = "BL"

	// GitHubTokenEnv is the environment variable holding the tag source API credential.
	GitHubTokenEnv = "GITHUB_API_TOKEN"

	// ScriptsMountPath is where the container scripts are mounted inside build containers.
	ScriptsMountPath = "/mnt/containerscripts"

	// PackageMountPath is where the package source is mounted inside build containers.
	PackageMountPath = "/mnt/package"

	// OutputMountPath is where the output directory is mounted inside the build container.
	OutputMountPath = "/mnt/output"

	// InstallDependenciesScript is the dependency phase entrypoint.
	InstallDependenciesScript = "installdependencies.sh"

	// BuildScript is the build phase entrypoint.
	BuildScript = "build.sh"

	// DownloadWorkerCommand is the hidden subcommand the download agent re-executes.
	DownloadWorkerCommand = "download-worker"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for container scripts (rwxr-xr-x).
	ExecPerm = 0o755

	// PrivateDirPerm is the permission for staging directories (rwx------).
	PrivateDirPerm = 0o700

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ScriptCommand returns the in-container path of a container script.
func ScriptCommand(script string) string {
	return ScriptsMountPath + "/" + script
}

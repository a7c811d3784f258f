package config

import (
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

// Build turns a run or code request into an engine configuration and the
// orchestration options around it. Every configuration error surfaces here,
// before a session exists.
func Build(req models.Request, asm AssembleFunc) (*models.Config, *models.RunOptions, error) {
	var common *models.CommonOptions
	config := &models.Config{}
	switch r := req.(type) {
	case *models.RunRequest:
		common = &r.CommonOptions
		argv, err := ResolveArgv(r.Filename, r.Args, r.Remainder)
		if err != nil {
			return nil, nil, err
		}
		config.Run = &models.RunConfig{Argv: argv, Rootfs: r.Rootfs}
	case *models.CodeRequest:
		common = &r.CommonOptions
		code, err := buildCode(r, asm)
		if err != nil {
			return nil, nil, err
		}
		config.Code = code
	default:
		return nil, nil, errors.Errorf("cannot build a configuration for %q", req.Kind())
	}

	verbose, err := models.ResolveVerbosity(common.Verbose)
	if err != nil {
		return nil, nil, err
	}
	env, err := LoadEnv(common.Env)
	if err != nil {
		return nil, nil, err
	}
	if common.Filter != "" {
		if _, err := regexp.Compile(common.Filter); err != nil {
			return nil, nil, models.Configf("bad --filter: %v", err)
		}
	}
	config.Env = env
	config.Verbose = verbose
	config.Profile = common.Profile
	config.Console = !common.NoConsole
	config.Filter = common.Filter
	if common.LogFile != "" {
		config.LogDevices = []string{common.LogFile}
	}
	config.LogPlain = common.LogPlain
	config.Multithread = common.Multithread
	config.Libcache = common.Libcache

	opts, err := buildRunOptions(common, verbose)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	return config, opts, nil
}

func buildCode(r *models.CodeRequest, asm AssembleFunc) (*models.CodeConfig, error) {
	arch, err := models.ResolveArch(r.Arch)
	if err != nil {
		return nil, err
	}
	osType, err := models.ResolveOS(r.OS)
	if err != nil {
		return nil, err
	}
	endianToken := r.Endian
	if endianToken == "" {
		endianToken = "little"
	}
	endian, err := models.ResolveEndian(endianToken)
	if err != nil {
		return nil, err
	}
	format := r.Format
	if format == "" {
		format = "bin"
	}
	code, err := AcquirePayload(PayloadSource{
		Format:   format,
		Input:    r.Input,
		Filename: r.Filename,
		Arch:     arch,
		Endian:   endian,
		Thumb:    r.Thumb,
	}, asm)
	if err != nil {
		return nil, err
	}
	rootfs := r.Rootfs
	if rootfs == "" {
		rootfs = "."
	}
	return &models.CodeConfig{
		Rootfs: rootfs,
		Code:   code,
		OS:     osType,
		Arch:   arch,
		Endian: endian,
		Thumb:  r.Thumb,
	}, nil
}

func buildRunOptions(common *models.CommonOptions, verbose models.Verbosity) (*models.RunOptions, error) {
	if common.RR && !common.Qdb {
		return nil, models.Usagef("--rr requires --qdb")
	}
	if err := CheckDebugStop(common.DebugStop, verbose); err != nil {
		return nil, err
	}
	if common.Timeout < 0 {
		return nil, models.Usagef("--timeout must not be negative")
	}
	opts := &models.RunOptions{
		Qdb:       common.Qdb,
		RR:        common.RR,
		Gdb:       common.Gdb,
		Root:      common.Root,
		DebugStop: common.DebugStop,
		Timeout:   time.Duration(common.Timeout) * time.Second,
		Report:    common.JSON,
	}
	if common.CoverageFile != "" {
		token := common.CoverageFormat
		if token == "" {
			token = "drcov"
		}
		format, err := models.ResolveCoverageFormat(token)
		if err != nil {
			return nil, err
		}
		opts.Coverage = &models.CoverageOptions{Path: common.CoverageFile, Format: format}
	}
	return opts, nil
}

// CheckDebugStop rejects --debug-stop unless verbosity is at least debug.
func CheckDebugStop(debugStop bool, verbose models.Verbosity) error {
	if debugStop && verbose < models.VERBOSE_DEBUG {
		return models.Usagef("--debug-stop requires --verbose debug or higher")
	}
	return nil
}

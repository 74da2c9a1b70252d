package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/pacdec/pkg/config"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	FS types.FS
	// Path is where Write puts the file.
	Path  string
	Write bool
	// Current, when set, renders these effective settings instead of the
	// commented defaults.
	Current *config.Config
}

// GenConfigResult carries the rendered settings.
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}

// GenConfig outputs or writes a settings file
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	if opts.Current != nil {
		var err error
		content, err = config.Marshal(opts.Current)
		if err != nil {
			return nil, err
		}
	}
	result := &GenConfigResult{ConfigContent: content}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	if _, err := opts.FS.Stat(opts.Path); err == nil {
		return result, errors.Newf(errors.ErrInvalidInput, "%s already exists", opts.Path).
			WithDetail("path", opts.Path)
	}
	if err := opts.FS.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory for %s", opts.Path)
	}
	if err := opts.FS.WriteFile(opts.Path, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", opts.Path)
	}

	logger.Info().Str("path", opts.Path).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, opts.Path)
	return result, nil
}

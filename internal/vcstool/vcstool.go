// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package vcstool imports additional source repositories into the workspace
// from vcs repository files. A repository-file reference may be a local path
// or a URL; local paths are converted to file:// references before fetching.
package vcstool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
	"github.com/matt-FFFFFF/rosci/internal/shellrun"
	"github.com/spf13/afero"
)

const fileScheme = "file://"

var (
	// ErrResolveRepoFile is returned when a repository-file reference cannot be resolved.
	ErrResolveRepoFile = errors.New("failed to resolve repository file reference")
	// ErrFetchRepoFile is returned when the repository file cannot be fetched.
	ErrFetchRepoFile = errors.New("failed to fetch repository file")
)

type executor interface {
	Execute(ctx context.Context, commandLine, prefix string, opts shellrun.Options, logMessage string) (int, error)
}

// ResolveURL turns a repository-file reference into a fetchable URL.
// A reference naming an existing local file becomes a file:// URL with the
// absolute path; anything else (including already-URL inputs) is returned
// unchanged.
func ResolveURL(fs afero.Fs, ref string) (string, error) {
	exists, err := afero.Exists(fs, ref)
	if err != nil {
		return "", errors.Join(ErrResolveRepoFile, err)
	}

	if !exists {
		return ref, nil
	}

	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", errors.Join(ErrResolveRepoFile, err)
	}

	return fileScheme + abs, nil
}

// Fetch retrieves the repository file at the given URL into a temporary
// file and returns its local path. The caller owns the returned directory's
// cleanup function.
func Fetch(ctx context.Context, url string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "rosci-getter-*")
	if err != nil {
		return "", nil, errors.Join(ErrFetchRepoFile, err)
	}

	cleanup := func() { os.RemoveAll(tmpDir) } //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		cleanup()
		return "", nil, errors.Join(ErrFetchRepoFile, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	dst := filepath.Join(tmpDir, "deps.repos")

	req := &getter.Request{
		Src:     url,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := cli.Get(ctx, req); err != nil {
		cleanup()
		return "", nil, errors.Join(ErrFetchRepoFile, err)
	}

	ctxlog.Debug(ctx, "fetched repository file", "url", url, "dst", dst)

	return dst, cleanup, nil
}

// Import fetches each repository-file reference and imports its repositories
// into the workspace src directory with vcs. References are resolved with
// ResolveURL first, so local paths and URLs are both accepted.
func Import(
	ctx context.Context,
	fs afero.Fs,
	exec executor,
	opts shellrun.Options,
	refs []string,
) error {
	for _, ref := range refs {
		url, err := ResolveURL(fs, ref)
		if err != nil {
			return err
		}

		path, cleanup, err := Fetch(ctx, url)
		if err != nil {
			return err
		}

		commandLine := fmt.Sprintf("vcs import --force --recursive --input %q src", path)

		_, err = exec.Execute(ctx, commandLine, "", opts, "Import repositories from "+ref)

		cleanup()

		if err != nil {
			return err
		}
	}

	return nil
}

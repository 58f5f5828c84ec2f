package main

import (
	"context"
	"fmt"

	"golang.org/x/mod/semver"

	"fastcat.org/go/entab/magefiles/shx"
)

// Tag creates the release tag after checking everything passes.
func Tag(ctx context.Context, newVersion string) error {
	if !semver.IsValid(newVersion) {
		return fmt.Errorf("invalid version: %q", newVersion)
	} else if semver.Prerelease(newVersion) == "" && semver.Build(newVersion) != "" {
		return fmt.Errorf("build metadata is not allowed on a release tag: %q", newVersion)
	}
	if err := All(ctx); err != nil {
		return err
	}
	// force lightweight tags so that local runs match CI runs and don't prompt
	// for a message due to signing.
	return shx.Run(ctx, "git", "tag", "--no-sign", newVersion)
}

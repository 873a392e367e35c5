package indexer_test

import "github.com/Masterminds/semver/v3"

func mustVersion(s string) *semver.Version {
	v, err := semver.NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

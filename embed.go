package site

import "embed"

// Assets contains the stylesheet shipped with the site, served under /assets/.
//
//go:embed assets/*
var Assets embed.FS

package config

const (
	defaultZoteroBaseURL        = "https://api.zotero.org"
	defaultZoteroLibraryType    = "user"
	defaultMarkerTag            = "in_logseq"
	defaultPageLimit            = 100
	defaultMaxRetries           = 3
	defaultRequestTimeout       = 30
	defaultLogseqBinary         = "logseq"
	defaultURLProperty          = "ZoteroURL-om1JHnZv"
	defaultQueryTimeout         = 60
	defaultCredentialsService   = "zotero-tag-automation"
	defaultJournalPath          = "~/.local/share/zotsync/journal.db"
	defaultLogDir               = "~/.local/share/zotsync/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLockPath             = "~/.local/share/zotsync/zotsync.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Zotero: Zotero{
			BaseURL:        defaultZoteroBaseURL,
			LibraryType:    defaultZoteroLibraryType,
			Tag:            defaultMarkerTag,
			PageLimit:      defaultPageLimit,
			MaxRetries:     defaultMaxRetries,
			RequestTimeout: defaultRequestTimeout,
		},
		Logseq: Logseq{
			Binary:       defaultLogseqBinary,
			QueryTimeout: defaultQueryTimeout,
		},
		Credentials: Credentials{
			Service:  defaultCredentialsService,
			AllowEnv: true,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		Run: Run{
			LockPath: defaultLockPath,
		},
	}
}

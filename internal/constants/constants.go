package constants

import "time"

var ChatDefaults = struct {
	Model            string
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}{
	Model:            "deepseek-chat",
	MaxTokens:        2048,
	Temperature:      1,
	TopP:             1,
	FrequencyPenalty: 0,
	PresencePenalty:  0,
}

var CacheTTL = struct {
	Explanation time.Duration
}{
	Explanation: 7 * 24 * time.Hour, // 일주일 - 같은 문장/단어 조합은 거의 바뀌지 않음
}

var CacheKeys = struct {
	ExplanationPrefix string
}{
	ExplanationPrefix: "vocab:explain:",
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var DatabaseConfig = struct {
	PingTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}{
	PingTimeout:     5 * time.Second,
	MaxOpenConns:    10,
	MaxIdleConns:    2,
	ConnMaxLifetime: 5 * time.Minute,
}

var RESTConfig = struct {
	PathPrefix   string
	MaxErrorBody int
}{
	PathPrefix:   "/rest/v1/",
	MaxErrorBody: 512,
}

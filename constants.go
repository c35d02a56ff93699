package main

const (
	DefaultSessionWords   = 200
	DefaultSessionSeconds = 60
)

// Word length buckets for the weighted pick policy.
const (
	ShortWordMaxLen  = 4
	MediumWordMaxLen = 7
)

const (
	WeightShort  = 0.6
	WeightMedium = 0.3
)

const (
	PickPolicyWeighted = "weighted"
	PickPolicyUniform  = "uniform"
)

const (
	RouteStart       = "/api/start"
	RouteCheck       = "/api/check"
	RouteEnd         = "/api/end"
	RouteLeaderboard = "/api/leaderboard"
	RouteInviteQR    = "/api/invite/:token/qr"
	RouteHealth      = "/health"
)

const (
	CommandPlay        = "!play"
	CommandLeaderboard = "!leaderboard"
)

const LeaderboardSize = 10

const (
	requestIDKey contextKey = "request_id"
)

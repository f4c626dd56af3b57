package concourse

import (
	"errors"
	"fmt"
	"strings"

	"hooksync/internal"
)

// Compose builds the check-webhook callback URL the registered hook will
// invoke. It is a pure function: everything ambient arrives in env.
//
// Instance variables come from two independent sources, the build
// environment first and the put params second, concatenated rather than
// merged. A key present in both sources produces two query fragments; the
// hook delivers either way, so the duplication is kept as-is.
func Compose(src internal.Source, params internal.Params, env internal.BuildEnv) (string, error) {
	base := src.ConcourseURL
	if base == "" {
		base = env.ExternalURL
	}
	if base == "" {
		return "", errors.New("either source.concourse_url or ATC_EXTERNAL_URL must be set")
	}
	if env.TeamName == "" {
		return "", errors.New("BUILD_TEAM_NAME is not set")
	}
	pipeline := params.Pipeline
	if pipeline == "" {
		pipeline = env.PipelineName
	}
	if pipeline == "" {
		return "", errors.New("either params.pipeline or BUILD_PIPELINE_NAME must be set")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s/api/v1/teams/%s/pipelines/%s/resources/%s/check/webhook?webhook_token=%s",
		strings.TrimRight(base, "/"), env.TeamName, pipeline, params.ResourceName, params.WebhookToken)
	for _, v := range env.InstanceVars {
		fmt.Fprintf(&b, `&vars.%s="%s"`, v.Key, v.Value)
	}
	for _, v := range params.InstanceVars {
		fmt.Fprintf(&b, `&vars.%s="%s"`, v.Key, v.Value)
	}
	return encodeURI(b.String()), nil
}

// uriSafe are the bytes encodeURI leaves untouched: RFC 2396 unreserved and
// reserved characters plus '#'.
const uriSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()#"

// encodeURI percent-encodes the composed string as a single URI, so quotes,
// spaces and non-ASCII bytes in tokens or instance variables survive the
// trip through the hook config.
func encodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(uriSafe, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

package fanfou

import (
	"context"
	"net/http"

	"github.com/dghubble/oauth1"
	"github.com/inovacc/nofan/internal/model"
)

// Consumer is the application's OAuth consumer credentials.
type Consumer struct {
	Key    string
	Secret string
}

// signedHTTP returns an http.Client that signs every request with OAuth
// 1.0a HMAC-SHA1 for the consumer and token. Query and url-encoded form
// parameters take part in the signature; multipart bodies do not. An empty
// token signs consumer-only requests such as the XAuth exchange.
func signedHTTP(consumer Consumer, token model.OAuthToken) *http.Client {
	cfg := oauth1.NewConfig(consumer.Key, consumer.Secret)

	return cfg.Client(context.Background(), oauth1.NewToken(token.Token, token.Secret))
}

// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Command follow fetches a URL, following redirects, and prints the final
// status and body.  Each hop is logged to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	cookiejar "github.com/juju/persistent-cookiejar"
	"github.com/rs/zerolog"
	"github.com/xmidt-org/redirectaux"
	"github.com/xmidt-org/redirectaux/client"
	"github.com/xmidt-org/redirectaux/cookie"
	"github.com/xmidt-org/redirectaux/cookie/sqlitestore"
	"github.com/xmidt-org/redirectaux/redirect"
	"golang.org/x/net/publicsuffix"
)

const defaultUserAgent = "redirectaux-follow/1.0"

// Jar formats understood by -jar-format.
const (
	JarFormatSQLite = "sqlite"
	JarFormatJSON   = "json"
)

// multiFlag is a repeatable string flag.
type multiFlag []string

func (mf *multiFlag) String() string {
	return strings.Join(*mf, ", ")
}

func (mf *multiFlag) Set(v string) error {
	*mf = append(*mf, v)
	return nil
}

type options struct {
	configFilename string
	method         string
	data           string
	headers        multiFlag
	cookies        multiFlag
	maxRedirects   int
	noFollow       bool
	crossProtocol  bool
	omitReferer    bool
	jar            string
	jarFormat      string
	timeout        time.Duration
	hopTimeout     time.Duration
	verbose        bool

	target string
}

func parseOptions(args []string, output io.Writer) (o options, cfg Config, err error) {
	fs := flag.NewFlagSet("follow", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.configFilename, "config", "", "Path to a YAML config file")
	fs.StringVar(&o.method, "X", "", "HTTP method (default GET, or POST when -d is used)")
	fs.StringVar(&o.data, "d", "", "Request body")
	fs.Var(&o.headers, "H", "Header sent on every hop, as name:value (repeatable)")
	fs.Var(&o.cookies, "cookie", "Cookie to seed the jar with, as name=value (repeatable)")
	fs.IntVar(&o.maxRedirects, "max", 0, "Maximum number of redirects (default 10)")
	fs.BoolVar(&o.noFollow, "no-follow", false, "Do not follow redirects")
	fs.BoolVar(&o.crossProtocol, "cross-protocol", false, "Follow redirects between http and https")
	fs.BoolVar(&o.omitReferer, "no-referer", false, "Do not send a Referer on redirects")
	fs.StringVar(&o.jar, "jar", "", "Cookie jar file (use 'memory' for an in-memory jar)")
	fs.StringVar(&o.jarFormat, "jar-format", JarFormatSQLite, "Cookie jar file format: sqlite or json")
	fs.DurationVar(&o.timeout, "timeout", 0, "Maximum time for the whole chain")
	fs.DurationVar(&o.hopTimeout, "hop-timeout", 0, "Maximum time for each hop")
	fs.BoolVar(&o.verbose, "v", false, "Verbosity: debug logging")

	if err = fs.Parse(args); err != nil {
		return
	}

	if fs.NArg() != 1 {
		err = errors.New("exactly one URL is required")
		return
	}

	o.target = fs.Arg(0)
	if len(o.configFilename) > 0 {
		if cfg, err = getConfig(o.configFilename); err != nil {
			return
		}
	}

	// flags that were explicitly set override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "X":
			cfg.Method = o.method
		case "max":
			cfg.MaxRedirects = o.maxRedirects
		case "no-follow":
			cfg.NoFollow = o.noFollow
		case "cross-protocol":
			cfg.CrossProtocol = o.crossProtocol
		case "no-referer":
			cfg.OmitReferer = o.omitReferer
		case "jar":
			cfg.Jar = o.jar
		case "jar-format":
			cfg.JarFormat = o.jarFormat
		case "timeout":
			cfg.Timeout = o.timeout
		case "hop-timeout":
			cfg.HopTimeout = o.hopTimeout
		}
	})

	cfg.Cookies = append(cfg.Cookies, o.cookies...)
	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || len(strings.TrimSpace(name)) == 0 {
			err = fmt.Errorf("invalid header [%s]: expected name:value", h)
			return
		}

		if cfg.Headers == nil {
			cfg.Headers = make(map[string][]string)
		}

		name = http.CanonicalHeaderKey(strings.TrimSpace(name))
		cfg.Headers[name] = append(cfg.Headers[name], strings.TrimSpace(value))
	}

	if len(cfg.Method) == 0 {
		cfg.Method = http.MethodGet
		if len(o.data) > 0 {
			cfg.Method = http.MethodPost
		}
	}

	if len(cfg.UserAgent) == 0 {
		cfg.UserAgent = defaultUserAgent
	}

	switch cfg.JarFormat {
	case "":
		cfg.JarFormat = JarFormatSQLite
	case JarFormatSQLite, JarFormatJSON:
	default:
		err = fmt.Errorf("invalid jar format [%s]", cfg.JarFormat)
	}

	return
}

// newJar creates the cookie jar, if one is configured, and seeds it.  Seed
// cookies without a jar file use an in-memory jar.  The returned closer
// releases or saves the jar's storage.
func newJar(cfg Config, target *url.URL, logger *zerolog.Logger) (cookie.Jar, io.Closer, error) {
	switch {
	case len(cfg.Jar) > 0:
		// use the configured jar

	case len(cfg.Cookies) > 0:
		cfg.Jar = sqlitestore.Memory

	default:
		return nil, nil, nil
	}

	var (
		jar    cookie.Jar
		closer io.Closer
	)

	if cfg.JarFormat == JarFormatJSON {
		o := &cookiejar.Options{
			NoPersist:        cfg.Jar == sqlitestore.Memory,
			PublicSuffixList: publicsuffix.List,
		}

		if !o.NoPersist {
			o.Filename = cfg.Jar
		}

		pj, err := cookiejar.New(o)
		if err != nil {
			return nil, nil, err
		}

		jar = cookie.FromHTTP(pj)
		if !o.NoPersist {
			closer = saveOnClose{jar: pj}
		}
	} else {
		storage, err := sqlitestore.Open(cfg.Jar)
		if err != nil {
			return nil, nil, err
		}

		jar = cookie.New(cookie.Options{
			Storage: storage,
			Logger:  logger,
		})

		closer = storage
	}

	if len(cfg.Cookies) > 0 {
		// seeds apply to the whole origin, not just the target's directory
		origin := &url.URL{Scheme: target.Scheme, Host: target.Host, Path: "/"}
		jar.Store(origin, http.Header{"Set-Cookie": cfg.Cookies})
	}

	return jar, closer, nil
}

// saveOnClose writes a persistent cookie jar back to its file.
type saveOnClose struct {
	jar *cookiejar.Jar
}

func (soc saveOnClose) Close() error {
	return soc.jar.Save()
}

// logHops is client middleware that logs each hop of a chain as it is issued.
func logHops(next redirectaux.Client) redirectaux.Client {
	return client.Func(func(request *http.Request) (*http.Response, error) {
		e := zerolog.Ctx(request.Context()).Info().
			Str("method", request.Method).
			Str("url", request.URL.Redacted())

		if s := redirect.GetState(request.Context()); s != nil {
			e = e.Int("hop", s.Redirects())
		}

		e.Msg("request")
		return next.Do(request)
	})
}

func run(args []string, stdout, stderr io.Writer) error {
	o, cfg, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	logLevel := zerolog.InfoLevel
	if o.verbose {
		logLevel = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		Level(logLevel).
		With().Timestamp().
		Logger()

	target, err := url.Parse(o.target)
	if err != nil {
		return err
	}

	jar, closer, err := newJar(cfg, target, &logger)
	if err != nil {
		return err
	}

	if closer != nil {
		defer func() {
			if closeErr := closer.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("unable to close the cookie jar")
			}
		}()
	}

	userAgent := redirectaux.NewHeaders("User-Agent", cfg.UserAgent)
	c := client.NewChain(
		redirect.New(redirect.Config{
			MaxRedirects:       cfg.MaxRedirects,
			AllowCrossProtocol: cfg.CrossProtocol,
			Jar:                jar,
			Header:             redirectaux.NewHeader(cfg.Headers),
			HopTimeout:         cfg.HopTimeout,
			MaxElapsedTime:     cfg.Timeout,
			OmitReferer:        cfg.OmitReferer,
		}),
		logHops,
		client.Header(userAgent.SetTo),
	).Then(client.NewHTTPClient(nil))

	ctx := logger.WithContext(context.Background())
	if cfg.NoFollow {
		ctx = redirect.WithFollow(ctx, false)
	}

	var body io.Reader
	if len(o.data) > 0 {
		body = strings.NewReader(o.data)
	}

	request, err := http.NewRequestWithContext(ctx, cfg.Method, target.String(), body)
	if err != nil {
		return err
	}

	response, err := c.Do(request)
	if err != nil {
		if response != nil {
			logger.Warn().Int("status", response.StatusCode).Msg("last response")
		}

		return err
	}

	defer response.Body.Close()
	fmt.Fprintln(stdout, response.Status)
	_, err = io.Copy(stdout, response.Body)
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ErrUnauthenticated means no stored token was found; the auth command
// has to be run first.
var ErrUnauthenticated = fmt.Errorf("not authenticated with Google, run the auth command first")

const callbackAddr = "localhost:8484"

// Auth runs the installed-app OAuth flow and keeps the resulting token
// in a file on disk. The token is read once per invocation and written
// once after interactive authorization.
type Auth struct {
	oauthConfig *oauth2.Config
	tokenFile   string
}

func NewAuth(clientID, clientSecret, tokenFile string) *Auth {
	oauthConfig := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://" + callbackAddr + "/oauth/callback",
		Scopes:       []string{gcal.CalendarEventsScope, gcal.CalendarReadonlyScope},
	}
	return &Auth{oauthConfig: oauthConfig, tokenFile: tokenFile}
}

// Authorize walks the user through browser consent, catches the
// redirect on a localhost callback server, exchanges the code, and
// stores the token.
func (a *Auth) Authorize(ctx context.Context) error {
	stateNonce := uuid.New().String()
	authURL := a.oauthConfig.AuthCodeURL(stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	router := mux.NewRouter()
	router.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("state") != stateNonce {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("OAuth state nonce mismatch")}
			return
		}
		code := r.FormValue("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("authorization code missing in OAuth callback")}
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this window.")
		results <- callbackResult{code: code}
	})

	listener, err := net.Listen("tcp", callbackAddr)
	if err != nil {
		return fmt.Errorf("could not listen on %s for the OAuth callback: %w", callbackAddr, err)
	}
	srv := &http.Server{Handler: router}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("OAuth callback server error: %v", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	log.Info("Open the following URL in your browser to authorize calendar access:")
	fmt.Println(authURL)

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}
	if result.err != nil {
		return result.err
	}

	token, err := a.oauthConfig.Exchange(ctx, result.code)
	if err != nil {
		return fmt.Errorf("unable to exchange code for token: %w", err)
	}
	if err := a.saveToken(token); err != nil {
		return err
	}
	log.Infof("Stored Google authorization token in %s", a.tokenFile)
	return nil
}

// Service builds an authorized Calendar API client from the stored
// token.
func (a *Auth) Service(ctx context.Context) (*gcal.Service, error) {
	token, err := a.loadToken()
	if err != nil {
		return nil, err
	}
	client := a.oauthConfig.Client(ctx, token)
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func (a *Auth) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("unable to read token file %s: %w", a.tokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("unable to parse token file %s: %w", a.tokenFile, err)
	}
	return &token, nil
}

// saveToken writes the token atomically with 0600 permissions.
func (a *Auth) saveToken(token *oauth2.Token) error {
	dir := filepath.Dir(a.tokenFile)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("could not marshal token: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".swimsync-token-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, a.tokenFile)
}

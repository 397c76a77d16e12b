// Package cas imports holdings from XML consolidated account statements, the
// export format most registrars and aggregators provide for a portfolio.
package cas

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/models"
)

// Client fetches statements over HTTP with retries
type Client struct {
	http *retryablehttp.Client
	log  *logrus.Logger
}

// NewClient initializes a statement fetcher
func NewClient(log *logrus.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	return &Client{http: rc, log: log}
}

// FetchStatement downloads a statement document from the given URL
func (c *Client) FetchStatement(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build statement request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch statement")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code %d fetching statement", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read statement body")
	}

	c.log.Debugf("Fetched statement, %d bytes", len(body))
	return body, nil
}

// ParseStatement extracts holdings from a statement document. Expected shape:
//
//	<statement>
//	  <holding>
//	    <name>HDFC Liquid Fund</name>
//	    <type>MUTUAL_FUND</type>
//	    <invested>100000</invested>
//	    <value>112500.50</value>
//	    <emergencyFund>false</emergencyFund>
//	  </holding>
//	</statement>
func ParseStatement(raw []byte) ([]models.Investment, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, errors.Wrap(err, "parse statement XML")
	}

	holdings := doc.FindElements("//holding")
	if len(holdings) == 0 {
		return nil, errors.New("no holdings found in statement")
	}

	investments := make([]models.Investment, 0, len(holdings))
	for i, el := range holdings {
		inv, err := parseHolding(el)
		if err != nil {
			return nil, errors.Wrapf(err, "holding %d", i+1)
		}
		investments = append(investments, inv)
	}
	return investments, nil
}

func parseHolding(el *etree.Element) (models.Investment, error) {
	var inv models.Investment

	inv.Name = childText(el, "name")
	inv.Type = models.InvestmentType(strings.ToUpper(childText(el, "type")))
	if !inv.Type.Valid() {
		return inv, errors.Errorf("unknown holding type %q", inv.Type)
	}

	invested, err := childFloat(el, "invested")
	if err != nil {
		return inv, err
	}
	value, err := childFloat(el, "value")
	if err != nil {
		return inv, err
	}
	inv.InvestedAmount = invested
	inv.CurrentValue = value
	inv.IsEmergencyFund = strings.EqualFold(childText(el, "emergencyFund"), "true")
	return inv, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.FindElement("./" + tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func childFloat(el *etree.Element, tag string) (float64, error) {
	text := childText(el, tag)
	if text == "" {
		return 0, errors.Errorf("missing element %q", tag)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse element %q", tag)
	}
	return value, nil
}

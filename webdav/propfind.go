package webdav

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	nsDAV        = "DAV:"
	nsYandexMeta = "urn:yandex:disk:meta"
)

const (
	allpropBody = `<?xml version="1.0" encoding="utf-8" ?>
<D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`

	quotaBody = `<?xml version="1.0" encoding="utf-8" ?>
<D:propfind xmlns:D="DAV:"><D:prop><D:quota-available-bytes/><D:quota-used-bytes/></D:prop></D:propfind>`

	publishBody = `<?xml version="1.0" encoding="utf-8" ?>
<propertyupdate xmlns="DAV:"><set><prop><public_url xmlns="urn:yandex:disk:meta">true</public_url></prop></set></propertyupdate>`

	unpublishBody = `<?xml version="1.0" encoding="utf-8" ?>
<propertyupdate xmlns="DAV:"><remove><prop><public_url xmlns="urn:yandex:disk:meta"/></prop></remove></propertyupdate>`
)

// WebDAV XML structures for PROPFIND and PROPPATCH responses
type Multistatus struct {
	XMLName   xml.Name   `xml:"multistatus"`
	Responses []Response `xml:"response"`
}

type Response struct {
	Href      string     `xml:"href"`
	Propstats []Propstat `xml:"propstat"`
}

type Propstat struct {
	Prop   Prop   `xml:"prop"`
	Status string `xml:"status"`
}

func (ps Propstat) OK() bool {
	fields := strings.Fields(ps.Status)
	return len(fields) >= 2 && strings.HasPrefix(fields[1], "2")
}

type Prop struct {
	Properties []Property `xml:",any"`
}

// Property is a single property element. Values made of child elements,
// like resourcetype, keep the names of those children.
type Property struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []struct {
		XMLName xml.Name
	} `xml:",any"`
}

func (p Property) Key() string {
	if p.XMLName.Space == "" || p.XMLName.Space == nsDAV {
		return p.XMLName.Local
	}
	return "{" + p.XMLName.Space + "}" + p.XMLName.Local
}

func (p Property) Value() string {
	if text := strings.TrimSpace(p.Text); text != "" {
		return text
	}
	names := make([]string, 0, len(p.Children))
	for _, c := range p.Children {
		names = append(names, c.XMLName.Local)
	}
	return strings.Join(names, ",")
}

// find returns the value of the first successfully reported property.
func (r Response) find(space, local string) (string, bool) {
	for _, ps := range r.Propstats {
		if !ps.OK() {
			continue
		}
		for _, p := range ps.Prop.Properties {
			if p.XMLName.Local == local && (p.XMLName.Space == space || p.XMLName.Space == "") {
				return p.Value(), true
			}
		}
	}
	return "", false
}

// Info is the property set of one resource.
type Info struct {
	Path       string            `yaml:"path"`
	Properties map[string]string `yaml:"properties"`
}

func (c *Client) multistatus(ctx context.Context, method Method, remote, body string, header map[string]string) (*Multistatus, error) {
	hdr := map[string]string{"Content-Type": "application/xml; charset=utf-8"}
	for k, v := range header {
		hdr[k] = v
	}
	resp, err := c.doRequest(ctx, method, remote, strings.NewReader(body), int64(len(body)), hdr)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, remote, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, remote)
	case resp.StatusCode == http.StatusMultiStatus:
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		io.Copy(io.Discard, resp.Body)
		return &Multistatus{}, nil
	default:
		return nil, fmt.Errorf("%s %s: %s", method, remote, resp.Status)
	}

	var ms Multistatus
	if err := xml.NewDecoder(resp.Body).Decode(&ms); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return &ms, nil
}

// Free returns the available space of the root in bytes.
func (c *Client) Free(ctx context.Context) (int64, error) {
	ms, err := c.multistatus(ctx, MethodPropfind, "/", quotaBody, map[string]string{"Depth": "0"})
	if err != nil {
		return 0, err
	}
	for _, r := range ms.Responses {
		raw, ok := r.find(nsDAV, "quota-available-bytes")
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid quota-available-bytes %q: %w", raw, err)
		}
		return n, nil
	}
	return 0, ErrQuotaUnavailable
}

// Info returns all properties the server reports for remote.
func (c *Client) Info(ctx context.Context, remote string) (*Info, error) {
	ms, err := c.multistatus(ctx, MethodPropfind, clean(remote), allpropBody, map[string]string{"Depth": "0"})
	if err != nil {
		return nil, err
	}
	if len(ms.Responses) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, remote)
	}
	r := ms.Responses[0]
	href, err := url.PathUnescape(r.Href)
	if err != nil {
		href = r.Href
	}
	info := &Info{Path: href, Properties: map[string]string{}}
	for _, ps := range r.Propstats {
		if !ps.OK() {
			continue
		}
		for _, p := range ps.Prop.Properties {
			info.Properties[p.Key()] = p.Value()
		}
	}
	return info, nil
}

// Publish makes remote public and returns its link.
func (c *Client) Publish(ctx context.Context, remote string) (string, error) {
	ms, err := c.multistatus(ctx, MethodProppatch, clean(remote), publishBody, nil)
	if err != nil {
		return "", err
	}
	for _, r := range ms.Responses {
		if link, ok := r.find(nsYandexMeta, "public_url"); ok && link != "" {
			return link, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotPublished, remote)
}

// Unpublish revokes the public link of remote.
func (c *Client) Unpublish(ctx context.Context, remote string) error {
	ms, err := c.multistatus(ctx, MethodProppatch, clean(remote), unpublishBody, nil)
	if err != nil {
		return err
	}
	for _, r := range ms.Responses {
		for _, ps := range r.Propstats {
			if !ps.OK() {
				return fmt.Errorf("unpublish %s: %s", remote, ps.Status)
			}
		}
	}
	return nil
}

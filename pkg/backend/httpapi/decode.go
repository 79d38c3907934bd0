package httpapi

import (
	"scanconsole/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Report status labels used by the backend.
const (
	statusCompleted = "completed"
	statusErrored   = "error"
)

// DecodeReport decodes a report status document:
//
//	{"status": "completed"|"error"|..., "data": {"stats": {...}, "results": {...}}, "error": "..."}
//
// Engine results are decoded straight into the result map. Unknown keys are
// skipped. Statuses other than completed and error are Pending.
func DecodeReport(b []byte) (domain.ReportStatus, error) {
	var (
		status string
		reason string
		data   domain.ReportData
	)

	d := jx.DecodeBytes(b)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "status":
			s, err := optString(d)
			status = s

			return errors.Wrap(err, "status")
		case "error":
			s, err := looseString(d)
			reason = s

			return errors.Wrap(err, "error")
		case "data":
			return errors.Wrap(decodeReportData(d, &data), "data")
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode report")
	}

	switch status {
	case statusCompleted:
		if data.Results == nil {
			data.Results = map[string]domain.EngineResult{}
		}

		return domain.Completed{Data: data}, nil
	case statusErrored:
		if reason == "" {
			reason = "Scan failed"
		}

		return domain.Failed{Reason: reason}, nil
	default:
		return domain.Pending{}, nil
	}
}

func decodeReportData(d *jx.Decoder, out *domain.ReportData) error {
	if d.Next() == jx.Null {
		return d.Null()
	}

	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "stats":
			return errors.Wrap(decodeStats(d, &out.Stats), "stats")
		case "results":
			return errors.Wrap(decodeResults(d, out), "results")
		default:
			return d.Skip()
		}
	})
}

func decodeStats(d *jx.Decoder, out *domain.Stats) error {
	if d.Next() == jx.Null {
		return d.Null()
	}

	return d.Obj(func(d *jx.Decoder, key string) error {
		var dst *int
		switch key {
		case "malicious":
			dst = &out.Malicious
		case "suspicious":
			dst = &out.Suspicious
		case "harmless":
			dst = &out.Harmless
		case "undetected":
			dst = &out.Undetected
		default:
			return d.Skip()
		}
		if d.Next() == jx.Null {
			return d.Null()
		}
		n, err := d.Int()
		if err != nil {
			return errors.Wrap(err, key)
		}
		*dst = n

		return nil
	})
}

func decodeResults(d *jx.Decoder, out *domain.ReportData) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	if out.Results == nil {
		out.Results = map[string]domain.EngineResult{}
	}

	return d.Obj(func(d *jx.Decoder, engine string) error {
		var res domain.EngineResult
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "category":
				s, err := optString(d)
				res.Category = domain.Category(s)

				return err
			case "result":
				if d.Next() == jx.Null {
					return d.Null()
				}
				s, err := d.Str()
				if err != nil {
					return err
				}
				res.Result = &s

				return nil
			default:
				return d.Skip()
			}
		}); err != nil {
			return errors.Wrapf(err, "engine %q", engine)
		}
		out.Results[engine] = res

		return nil
	})
}

// optString reads a string or null.
func optString(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}

	return d.Str()
}

// looseString reads a string, or keeps any other JSON value as its raw text.
func looseString(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.Null:
		return "", d.Null()
	case jx.String:
		return d.Str()
	default:
		raw, err := d.Raw()
		if err != nil {
			return "", err
		}

		return raw.String(), nil
	}
}

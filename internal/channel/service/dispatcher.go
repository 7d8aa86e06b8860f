package service

import (
	"context"
	"errors"
	"sort"
	"time"

	numberstransport "phonebridge/internal/numbers/transport"
	"phonebridge/internal/regions/repository"
	"phonebridge/platform/apperr"
	"phonebridge/platform/logger"
)

// Method names callers dispatch on.
const (
	MethodGetAllSupportedRegions = "get_all_supported_regions"
	MethodParse                  = "parse"
	MethodFormat                 = "format"
)

// Argument keys.
const (
	ArgPhone  = "phone"
	ArgRegion = "region"
	// ArgLegacyString is the key older clients send the format input under.
	ArgLegacyString = "string"
)

// Numbers parses and formats numbers.
type Numbers interface {
	Parse(ctx context.Context, req numberstransport.ParseRequest) (numberstransport.ParseResponse, error)
	Format(ctx context.Context, req numberstransport.FormatRequest) (numberstransport.FormatResponse, error)
}

// Regions lists the supported region catalog.
type Regions interface {
	List(ctx context.Context) (repository.Catalog, error)
}

type methodFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Dispatcher routes named method calls to the number and region services.
type Dispatcher struct {
	numbers Numbers
	regions Regions
	log     *logger.Logger
	methods map[string]methodFunc
}

// New creates a dispatcher over the given services.
func New(numbers Numbers, regions Regions, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		numbers: numbers,
		regions: regions,
		log:     log,
	}
	d.methods = map[string]methodFunc{
		MethodGetAllSupportedRegions: d.getAllSupportedRegions,
		MethodParse:                  d.parse,
		MethodFormat:                 d.format,
	}
	return d
}

// Methods returns the supported method names, sorted.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.methods))
	for name := range d.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes method with args. Every failure is an *apperr.Error carrying a wire code.
// A nil args map is treated as empty.
func (d *Dispatcher) Call(ctx context.Context, method string, args map[string]interface{}) (interface{}, error) {
	start := time.Now()

	result, err := d.call(ctx, method, args)

	code := ""
	if err != nil {
		var domainErr *apperr.Error
		if !errors.As(err, &domainErr) {
			domainErr = apperr.Internal("call failed", err).WithOp(method)
			err = domainErr
		}
		code = domainErr.Code()
	}
	d.log.WithContext(ctx).ChannelCall(method, code, time.Since(start))

	return result, err
}

func (d *Dispatcher) call(ctx context.Context, method string, args map[string]interface{}) (interface{}, error) {
	fn, ok := d.methods[method]
	if !ok {
		return nil, apperr.NotImplemented(method)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return fn(ctx, args)
}

// getAllSupportedRegions runs off the caller's goroutine; the caller stops
// waiting when ctx ends.
func (d *Dispatcher) getAllSupportedRegions(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	type listResult struct {
		catalog repository.Catalog
		err     error
	}

	done := make(chan listResult, 1)
	go func() {
		catalog, err := d.regions.List(ctx)
		done <- listResult{catalog: catalog, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, apperr.Canceled(ctx.Err())
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
				return nil, apperr.Canceled(res.err)
			}
			return nil, apperr.Internal("failed to build region catalog", res.err)
		}
		return res.catalog, nil
	}
}

func (d *Dispatcher) parse(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	phone, _, err := stringArg(args, ArgPhone)
	if err != nil {
		return nil, err
	}
	region, _, err := stringArg(args, ArgRegion)
	if err != nil {
		return nil, err
	}

	res, err := d.numbers.Parse(ctx, numberstransport.ParseRequest{Phone: phone, Region: region})
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"type":            res.Type,
		"e164":            res.E164,
		"international":   res.International,
		"national":        res.National,
		"country_code":    res.CountryCode,
		"national_number": res.NationalNumber,
	}, nil
}

func (d *Dispatcher) format(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	phone, ok, err := stringArg(args, ArgPhone)
	if err != nil {
		return nil, err
	}
	if !ok {
		phone, ok, err = stringArg(args, ArgLegacyString)
		if err != nil {
			return nil, err
		}
	}
	region, _, err := stringArg(args, ArgRegion)
	if err != nil {
		return nil, err
	}

	req := numberstransport.FormatRequest{Region: region}
	if ok {
		req.Phone = &phone
	}

	res, err := d.numbers.Format(ctx, req)
	if err != nil {
		return nil, err
	}
	return map[string]string{"formatted": res.Formatted}, nil
}

// stringArg reads an optional string argument. A nil value counts as absent.
func stringArg(args map[string]interface{}, key string) (string, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, apperr.InvalidParameter(key)
	}
	return value, true, nil
}

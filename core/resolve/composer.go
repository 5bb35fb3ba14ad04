package resolve

import (
	"context"
	"fmt"

	"inventory-sync/core/entity"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EnsureManufacturer resolves a manufacturer draft.
func (r *Resolver) EnsureManufacturer(ctx context.Context, m *entity.Manufacturer) error {
	return Ensure(ctx, r, r.cache.Manufacturers, m)
}

// EnsureDeviceType resolves a device type. Its manufacturer resolves
// first because the device-type payload embeds the manufacturer's
// identifier.
func (r *Resolver) EnsureDeviceType(ctx context.Context, dt *entity.DeviceType) error {
	if dt.Manufacturer == nil {
		return fmt.Errorf("device type %q: manufacturer: %w", dt.Slug, entity.ErrUnresolvedRef)
	}
	if err := r.EnsureManufacturer(ctx, dt.Manufacturer); err != nil {
		return fmt.Errorf("device type %q: %w", dt.Slug, err)
	}
	return Ensure(ctx, r, r.cache.DeviceTypes, dt)
}

// EnsureRole resolves a device role draft.
func (r *Resolver) EnsureRole(ctx context.Context, role *entity.DeviceRole) error {
	return Ensure(ctx, r, r.cache.Roles, role)
}

// EnsureSite resolves a site draft.
func (r *Resolver) EnsureSite(ctx context.Context, site *entity.Site) error {
	return Ensure(ctx, r, r.cache.Sites, site)
}

// EnsurePlatform resolves a platform draft.
func (r *Resolver) EnsurePlatform(ctx context.Context, p *entity.Platform) error {
	return Ensure(ctx, r, r.cache.Platforms, p)
}

// EnsureTag resolves a tag draft.
func (r *Resolver) EnsureTag(ctx context.Context, t *entity.Tag) error {
	return Ensure(ctx, r, r.cache.Tags, t)
}

// EnsureContact resolves a contact draft.
func (r *Resolver) EnsureContact(ctx context.Context, c *entity.Contact) error {
	return Ensure(ctx, r, r.cache.Contacts, c)
}

// EnsureDeviceComponents resolves every sub-entity a device references
// before the device itself can be submitted. The branches (type incl.
// manufacturer, role, site, platform, tags) are independent of one
// another and run concurrently; the first error fails the device while
// the remaining branches drain.
func (r *Resolver) EnsureDeviceComponents(ctx context.Context, d *entity.Device) error {
	g, ctx := errgroup.WithContext(ctx)

	if d.DeviceType != nil {
		g.Go(r.branch(ctx, d.Name, "device_type", func(ctx context.Context) error {
			return r.EnsureDeviceType(ctx, d.DeviceType)
		}))
	}
	if d.Role != nil {
		g.Go(r.branch(ctx, d.Name, "role", func(ctx context.Context) error {
			return r.EnsureRole(ctx, d.Role)
		}))
	}
	if d.Site != nil {
		g.Go(r.branch(ctx, d.Name, "site", func(ctx context.Context) error {
			return r.EnsureSite(ctx, d.Site)
		}))
	}
	if d.Platform != nil {
		g.Go(r.branch(ctx, d.Name, "platform", func(ctx context.Context) error {
			return r.EnsurePlatform(ctx, d.Platform)
		}))
	}
	for _, tag := range d.Tags {
		tag := tag
		g.Go(r.branch(ctx, d.Name, "tag "+tag.Slug, func(ctx context.Context) error {
			return r.EnsureTag(ctx, tag)
		}))
	}

	return g.Wait()
}

// branch wraps one component resolution so every failed branch is logged
// even though only the first error propagates.
func (r *Resolver) branch(ctx context.Context, device, component string, fn func(context.Context) error) func() error {
	return func() error {
		if err := fn(ctx); err != nil {
			r.log.Warn("component resolution failed",
				zap.String("device", device),
				zap.String("component", component),
				zap.Error(err))
			return fmt.Errorf("%s: %w", component, err)
		}
		return nil
	}
}

package meraki

import (
	"context"

	"github.com/agentstation/esxsync/pkg/devices"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/logging"
)

// Devices collects the wireless devices matching q across organizations.
//
// A named organization that does not exist is an error. Organizations and
// devices for which API access is disabled (HTTP 404) are logged and
// skipped. Devices whose wireless status has no enabled BSSID are kept
// without one.
func (c *Client) Devices(ctx context.Context, q devices.Query) (*devices.Set, error) {
	orgs, err := c.Organizations(ctx)
	if err != nil {
		return nil, err
	}
	orgs, err = filterOrganizations(orgs, q.Organization)
	if err != nil {
		return nil, err
	}

	set := devices.NewSet()
	for _, org := range orgs {
		octx := logging.WithOrganization(ctx, org.Name)
		logger := logging.FromContext(octx)

		statuses, err := c.DeviceStatuses(octx, org.ID)
		if isAccessDisabled(err) {
			logger.Warn().Err(err).Msg("API access is disabled for organization, skipping")
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, st := range statuses {
			d := devices.Device{
				Name:         st.Name,
				Serial:       st.Serial,
				Model:        st.Model,
				Organization: org.Name,
			}
			if q.BSSIDs && st.Serial != "" {
				bssid, err := c.firstBSSID(octx, st.Serial)
				if err != nil {
					return nil, err
				}
				d.BSSID = bssid
			}
			if set.Add(d) {
				logger.Debug().Str("name", d.Name).Str("serial", d.Serial).Msg("device name seen before, keeping the latest")
			}
		}
		logger.Debug().Int("devices", len(statuses)).Msg("loaded organization devices")
	}
	return set, nil
}

func (c *Client) firstBSSID(ctx context.Context, serial string) (string, error) {
	ctx = logging.WithDevice(ctx, serial)
	logger := logging.FromContext(ctx)

	status, err := c.WirelessStatus(ctx, serial)
	if isAccessDisabled(err) {
		logger.Warn().Err(err).Msg("API access is disabled for device, skipping")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	bssid := status.FirstEnabledBSSID()
	if bssid == "" {
		logger.Debug().Msg("no enabled BSSID")
	} else {
		logger.Debug().Str("bssid", bssid).Msg("linked device to BSSID")
	}
	return bssid, nil
}

func filterOrganizations(orgs []Organization, name string) ([]Organization, error) {
	if name == "" {
		return orgs, nil
	}
	for _, o := range orgs {
		if o.Name == name {
			return []Organization{o}, nil
		}
	}
	return nil, errors.NewNotFoundError("organization", name)
}

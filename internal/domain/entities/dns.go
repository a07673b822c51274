package entities

// DNSServerList is an ordered list of resolvers; order is preference order
type DNSServerList []IPv4Address

// ParseDNSServerList parses dotted-decimal servers keeping their order
func ParseDNSServerList(servers []string) (DNSServerList, error) {
	list := make(DNSServerList, 0, len(servers))
	for _, s := range servers {
		addr, err := ParseIPv4Address(s)
		if err != nil {
			return nil, err
		}
		list = append(list, addr)
	}
	return list, nil
}

// Strings renders every server in dotted-decimal form
func (l DNSServerList) Strings() []string {
	out := make([]string, len(l))
	for i, addr := range l {
		out[i] = addr.String()
	}
	return out
}

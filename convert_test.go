package multiaddr

import (
	"net"
	"testing"
)

// TestToTCPAddr 测试转换为 *net.TCPAddr
func TestToTCPAddr(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantIP   string
		wantPort int
		wantErr  bool
	}{
		{"IPv4", "/ip4/127.0.0.1/tcp/4001", "127.0.0.1", 4001, false},
		{"IPv6", "/ip6/::1/tcp/8080", "::1", 8080, false},
		{"Extra components after port", "/ip4/10.0.0.2/tcp/443/tls", "10.0.0.2", 443, false},
		{"No port", "/ip4/127.0.0.1", "", 0, true},
		{"UDP instead of TCP", "/ip4/127.0.0.1/udp/4001", "", 0, true},
		{"No IP", "/dns/example.com/tcp/443", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := NewMultiaddr(tt.addr)
			if err != nil {
				t.Fatalf("NewMultiaddr() error = %v", err)
			}

			tcpAddr, err := ma.ToTCPAddr()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToTCPAddr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tcpAddr.IP.String() != tt.wantIP {
				t.Errorf("IP = %v, want %v", tcpAddr.IP, tt.wantIP)
			}
			if tcpAddr.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", tcpAddr.Port, tt.wantPort)
			}
		})
	}
}

// TestToUDPAddr 测试转换为 *net.UDPAddr
func TestToUDPAddr(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantIP   string
		wantPort int
		wantErr  bool
	}{
		{"IPv4", "/ip4/192.168.1.1/udp/5000", "192.168.1.1", 5000, false},
		{"IPv6", "/ip6/fe80::1/udp/9000", "fe80::1", 9000, false},
		{"QUIC address", "/ip4/1.2.3.4/udp/4001/quic-v1", "1.2.3.4", 4001, false},
		{"No port", "/ip4/192.168.1.1", "", 0, true},
		{"TCP instead of UDP", "/ip4/192.168.1.1/tcp/5000", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := NewMultiaddr(tt.addr)
			if err != nil {
				t.Fatalf("NewMultiaddr() error = %v", err)
			}

			udpAddr, err := ma.ToUDPAddr()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToUDPAddr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if udpAddr.IP.String() != tt.wantIP {
				t.Errorf("IP = %v, want %v", udpAddr.IP, tt.wantIP)
			}
			if udpAddr.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", udpAddr.Port, tt.wantPort)
			}
		})
	}
}

// TestFromNetAddr 测试从 net.Addr 创建多地址
func TestFromNetAddr(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{
			"TCP IPv4",
			&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001},
			"/ip4/127.0.0.1/tcp/4001",
		},
		{
			"TCP IPv6",
			&net.TCPAddr{IP: net.ParseIP("::1"), Port: 8080},
			"/ip6/::1/tcp/8080",
		},
		{
			// v4-mapped 地址折叠为 ip4
			"TCP IPv4-mapped IPv6",
			&net.TCPAddr{IP: net.ParseIP("::ffff:192.168.1.1"), Port: 9000},
			"/ip4/192.168.1.1/tcp/9000",
		},
		{
			"UDP IPv4",
			&net.UDPAddr{IP: net.ParseIP("192.168.1.1"), Port: 5000},
			"/ip4/192.168.1.1/udp/5000",
		},
		{
			"UDP IPv6",
			&net.UDPAddr{IP: net.ParseIP("fe80::1"), Port: 6000},
			"/ip6/fe80::1/udp/6000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := FromNetAddr(tt.addr)
			if err != nil {
				t.Fatalf("FromNetAddr() error = %v", err)
			}
			if ma.String() != tt.want {
				t.Errorf("FromNetAddr() = %v, want %v", ma.String(), tt.want)
			}
		})
	}
}

// TestFromNetAddrErrors 测试不支持的输入
func TestFromNetAddrErrors(t *testing.T) {
	if _, err := FromNetAddr(nil); err == nil {
		t.Error("FromNetAddr(nil) should fail")
	}
	if _, err := FromNetAddr(&net.UnixAddr{Name: "/tmp/sock", Net: "unix"}); err == nil {
		t.Error("FromNetAddr() should fail on unsupported address type")
	}
	if _, err := FromTCPAddr(nil); err == nil {
		t.Error("FromTCPAddr(nil) should fail")
	}
	if _, err := FromUDPAddr(nil); err == nil {
		t.Error("FromUDPAddr(nil) should fail")
	}
}

// TestNetAddrRoundTrip 测试 net.Addr 往返转换
func TestNetAddrRoundTrip(t *testing.T) {
	t.Run("TCP", func(t *testing.T) {
		original := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001}
		ma, err := FromTCPAddr(original)
		if err != nil {
			t.Fatal(err)
		}
		result, err := ma.ToTCPAddr()
		if err != nil {
			t.Fatal(err)
		}
		if !original.IP.Equal(result.IP) || original.Port != result.Port {
			t.Errorf("round trip: got %v, want %v", result, original)
		}
	})

	t.Run("UDP", func(t *testing.T) {
		original := &net.UDPAddr{IP: net.ParseIP("2001:db8::1"), Port: 5000}
		ma, err := FromUDPAddr(original)
		if err != nil {
			t.Fatal(err)
		}
		result, err := ma.ToUDPAddr()
		if err != nil {
			t.Fatal(err)
		}
		if !original.IP.Equal(result.IP) || original.Port != result.Port {
			t.Errorf("round trip: got %v, want %v", result, original)
		}
	})
}

// BenchmarkFromNetAddr 基准测试 net.Addr 转多地址
func BenchmarkFromNetAddr(b *testing.B) {
	addr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromNetAddr(addr)
	}
}

// BenchmarkToTCPAddr 基准测试多地址转 TCP
func BenchmarkToTCPAddr(b *testing.B) {
	ma, _ := NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ma.ToTCPAddr()
	}
}

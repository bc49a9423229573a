package multiaddr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryFind 测试注册表查找
func TestRegistryFind(t *testing.T) {
	proto, err := DefaultRegistry.FindByCode(P_IP4)
	require.NoError(t, err)
	assert.Equal(t, "ip4", proto.Name)
	assert.Equal(t, 32, proto.Size)

	proto, err = DefaultRegistry.FindByName("tcp")
	require.NoError(t, err)
	assert.Equal(t, P_TCP, proto.Code)

	// 别名解析到同一个协议
	proto, err = DefaultRegistry.FindByName("ipfs")
	require.NoError(t, err)
	assert.Equal(t, P_P2P, proto.Code)
	assert.Equal(t, "p2p", proto.Name)
}

// TestRegistryFindNotFound 测试查找不存在的协议
func TestRegistryFindNotFound(t *testing.T) {
	_, err := DefaultRegistry.FindByCode(0x7fffffff)
	assert.True(t, errors.Is(err, ErrProtocolNotFound))

	_, err = DefaultRegistry.FindByName("no-such-protocol")
	assert.True(t, errors.Is(err, ErrProtocolNotFound))
}

// TestRegistryLocked 测试锁定注册表的修改保护
func TestRegistryLocked(t *testing.T) {
	require.True(t, DefaultRegistry.Locked())

	err := DefaultRegistry.Add(Protocol{Name: "test-proto", Code: 0x7000})
	assert.True(t, errors.Is(err, ErrRegistryLocked))

	err = DefaultRegistry.AddAlias("test-alias", "tcp")
	assert.True(t, errors.Is(err, ErrRegistryLocked))
}

// TestRegistryCopyUnlock 测试复制解锁
func TestRegistryCopyUnlock(t *testing.T) {
	reg := DefaultRegistry.Copy(true)
	require.False(t, reg.Locked())

	err := reg.Add(Protocol{Name: "test-proto", Code: 0x7000, Size: 16, Transcoder: TranscoderPort})
	require.NoError(t, err)

	proto, err := reg.FindByName("test-proto")
	require.NoError(t, err)
	assert.Equal(t, 0x7000, proto.Code)
	assert.NotEmpty(t, proto.VCode)

	// 原注册表不受影响
	_, err = DefaultRegistry.FindByName("test-proto")
	assert.True(t, errors.Is(err, ErrProtocolNotFound))

	// 重新锁定后不可再修改
	reg.Lock()
	err = reg.Add(Protocol{Name: "test-proto-2", Code: 0x7001})
	assert.True(t, errors.Is(err, ErrRegistryLocked))
}

// TestRegistryCopyLockedSnapshot 测试锁定快照
func TestRegistryCopyLockedSnapshot(t *testing.T) {
	reg := DefaultRegistry.Copy(false)
	assert.True(t, reg.Locked())

	err := reg.Add(Protocol{Name: "test-proto", Code: 0x7000})
	assert.True(t, errors.Is(err, ErrRegistryLocked))
}

// TestRegistryAddDuplicate 测试重复注册
func TestRegistryAddDuplicate(t *testing.T) {
	reg := DefaultRegistry.Copy(true)

	err := reg.Add(Protocol{Name: "ip4-dup", Code: P_IP4, Size: 32})
	assert.True(t, errors.Is(err, ErrProtocolExists), "duplicate code should be rejected")

	err = reg.Add(Protocol{Name: "ip4", Code: 0x7000, Size: 32})
	assert.True(t, errors.Is(err, ErrProtocolExists), "duplicate name should be rejected")
}

// TestRegistryAddInvalid 测试非法协议注册
func TestRegistryAddInvalid(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Add(Protocol{Name: "", Code: 0x7000}))
	assert.Error(t, reg.Add(Protocol{Name: "neg", Code: -1}))
	assert.Error(t, reg.Add(Protocol{Name: "zero", Code: 0}))
}

// TestRegistryAddAlias 测试别名注册
func TestRegistryAddAlias(t *testing.T) {
	reg := DefaultRegistry.Copy(true)

	err := reg.AddAlias("tcp-alias", "tcp")
	require.NoError(t, err)
	proto, err := reg.FindByName("tcp-alias")
	require.NoError(t, err)
	assert.Equal(t, P_TCP, proto.Code)

	// 别名不能覆盖已有名称
	err = reg.AddAlias("udp", "tcp")
	assert.True(t, errors.Is(err, ErrProtocolExists))

	// 目标必须已注册
	err = reg.AddAlias("x", "no-such-protocol")
	assert.True(t, errors.Is(err, ErrProtocolNotFound))
}

// TestRegistryProtocolsOrder 测试协议列表顺序稳定
func TestRegistryProtocolsOrder(t *testing.T) {
	ps1 := DefaultRegistry.Protocols()
	ps2 := DefaultRegistry.Protocols()
	require.Equal(t, len(ps1), len(ps2))
	for i := range ps1 {
		assert.Equal(t, ps1[i].Code, ps2[i].Code)
	}

	// 快照保持同样的顺序
	cp := DefaultRegistry.Copy(true)
	ps3 := cp.Protocols()
	require.Equal(t, len(ps1), len(ps3))
	for i := range ps1 {
		assert.Equal(t, ps1[i].Code, ps3[i].Code)
	}
}

// TestRegistryCopyIndependence 测试快照与原表互不影响
func TestRegistryCopyIndependence(t *testing.T) {
	base := NewRegistry()
	require.NoError(t, base.Add(Protocol{Name: "a", Code: 1, Size: 0}))
	base.Lock()

	cp := base.Copy(true)
	require.NoError(t, cp.Add(Protocol{Name: "b", Code: 2, Size: 0}))

	assert.Len(t, base.Protocols(), 1)
	assert.Len(t, cp.Protocols(), 2)
}

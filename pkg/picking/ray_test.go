package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

func frontCamera(t *testing.T) *camera.Camera {
	t.Helper()
	c, err := camera.New(math.Vec3{Z: 10}, math.Vec3{}, math.Vec3{Y: 1}, 45, 0.1, 100)
	require.NoError(t, err)
	return c
}

func TestScreenToRayCenter(t *testing.T) {
	cam := frontCamera(t)
	vp, err := cam.ViewProjection(1)
	require.NoError(t, err)

	ray := ScreenToRay(50, 50, 100, 100, vp.Inverse())
	assert.InDelta(t, 0, ray.Direction.X, 1e-4)
	assert.InDelta(t, 0, ray.Direction.Y, 1e-4)
	assert.InDelta(t, -1, ray.Direction.Z, 1e-4)
	assert.InDelta(t, 10-cam.Near, ray.Origin.Z, 1e-2)
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"head on", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"pointing away", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantT, got, 1e-5)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	v0 := math.Vec3{X: -1, Y: -1}
	v1 := math.Vec3{X: 1, Y: -1}
	v2 := math.Vec3{Y: 1}
	down := Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{Z: -1}}

	got, hit := down.IntersectTriangle(v0, v1, v2)
	require.True(t, hit)
	assert.InDelta(t, 3, got, 1e-5)

	_, hit = down.IntersectTriangle(v0, v2, v1)
	assert.True(t, hit, "back faces are hit too")

	side := Ray{Origin: math.Vec3{X: 5, Z: 3}, Direction: math.Vec3{Z: -1}}
	_, hit = side.IntersectTriangle(v0, v1, v2)
	assert.False(t, hit)

	parallel := Ray{Origin: math.Vec3{Z: 1}, Direction: math.Vec3{X: 1}}
	_, hit = parallel.IntersectTriangle(v0, v1, v2)
	assert.False(t, hit)
}

func TestPickNearest(t *testing.T) {
	near, err := mesh.Cube("near", 1)
	require.NoError(t, err)
	farCube, err := mesh.Cube("far", 3)
	require.NoError(t, err)
	far := farCube.Transform("far", math.Translate(0, 0, -5))

	cam := frontCamera(t)
	hit, ok := Pick([]*mesh.Mesh{far, near}, cam, 200, 100, 100, 50)
	require.True(t, ok)
	assert.Equal(t, "near", hit.MeshID)
	assert.InDelta(t, 0.5, hit.Point.Z, 1e-3)

	_, ok = Pick([]*mesh.Mesh{far, near}, cam, 200, 100, 2, 2)
	assert.False(t, ok, "corner of the view sees nothing")
}

func TestPickInvalidInput(t *testing.T) {
	cube, err := mesh.Cube("c", 1)
	require.NoError(t, err)

	_, ok := Pick([]*mesh.Mesh{cube}, nil, 100, 100, 50, 50)
	assert.False(t, ok)
	_, ok = Pick([]*mesh.Mesh{cube}, frontCamera(t), 0, 100, 50, 50)
	assert.False(t, ok)
	_, ok = Pick(nil, frontCamera(t), 100, 100, 50, 50)
	assert.False(t, ok)
}

/*
Copyright © 2018 the sofa authors.
This file is part of sofa.

sofa is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

sofa is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with sofa.  If not, see <http://www.gnu.org/licenses/>.
*/

package sofautil

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/sofa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybeDownloadLocal(t *testing.T) {
	k, err := maybeDownload(context.Background(), "/dev/null")
	require.NoError(t, err)
	if k != "/dev/null" {
		t.Error("Expected /dev/null, got ", k)
	}
}

func TestMaybeDownloadLocal2(t *testing.T) {
	k, err := maybeDownload(context.Background(), "/blah/test/")
	require.NoError(t, err)
	if k != "/blah/test/" {
		t.Error("Expected /blah/test/, got ", k)
	}
}

func TestMaybeDownloadRemoteFail(t *testing.T) {
	_, err := maybeDownload(context.Background(), "http://blah.invalid/test.sofa")
	assert.Error(t, err)
}

func TestMaybeDownloadRemote(t *testing.T) {
	dir := t.TempDir()
	writeHRIR(t, dir, "remote.sofa")
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	k, err := maybeDownload(context.Background(), srv.URL+"/remote.sofa")
	require.NoError(t, err)
	if !strings.HasSuffix(k, "remote.sofa") || k == filepath.Join(dir, "remote.sofa") {
		t.Error("Expected tempDir/remote.sofa, got ", k)
	}
	f, err := sofa.Open(k)
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, sofa.IsValid(f))

	_, err = maybeDownload(context.Background(), srv.URL+"/missing.sofa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestBlob(t *testing.T) {
	const bucket = "testbucket"
	require.NoError(t, os.Mkdir(bucket, os.ModePerm))
	defer os.RemoveAll(bucket)
	ctx := context.Background()

	local := writeHRIR(t, t.TempDir(), "local.sofa")
	require.NoError(t, upload(ctx, local, "file://"+bucket+"/hrir.sofa"))
	_, err := os.Stat(filepath.Join(bucket, "hrir.sofa"))
	require.NoError(t, err)

	k, err := maybeDownload(ctx, "file://"+bucket+"/hrir.sofa")
	require.NoError(t, err)
	want, err := ioutil.ReadFile(local)
	require.NoError(t, err)
	got, err := ioutil.ReadFile(k)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = maybeDownload(ctx, "file://"+bucket+"/missing.sofa")
	assert.Error(t, err)

	t.Run("create", func(t *testing.T) {
		v, _ := testValidator()
		err := Create(ctx, v, &CreateOptions{
			Convention: sofa.GeneralFIRE,
			Output:     "file://" + bucket + "/fire.sofa",
		})
		require.NoError(t, err)
		f, err := sofa.Open(filepath.Join(bucket, "fire.sofa"))
		require.NoError(t, err)
		defer f.Close()
		assert.True(t, v.IsValidAs(f))
	})
}

func TestIsBlob(t *testing.T) {
	for path, want := range map[string]bool{
		"gs://bucket/file.sofa": true,
		"s3://bucket/file.sofa": true,
		"file://dir/file.sofa":  true,
		"http://host/file.sofa": false,
		"/tmp/file.sofa":        false,
	} {
		assert.Equal(t, want, IsBlob(path), path)
	}
}

func TestOpenBucket_invalid(t *testing.T) {
	_, err := OpenBucket(context.Background(), "ftp://bucket")
	assert.EqualError(t, err, "sofautil.OpenBucket: invalid provider ftp")
}

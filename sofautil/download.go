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
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
)

// maybeDownload checks if the input is an existing local file.
// If not, and the path is a URL or blob location, it downloads the file
// to a temporary directory and returns the path to the downloaded file.
// Other paths are returned unchanged.
func maybeDownload(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return downloadHTTP(path)
	}
	if IsBlob(path) {
		return downloadBlob(ctx, path)
	}
	return path, nil
}

// tempFile creates a file called name in a new temporary directory.
func tempFile(name string) (*os.File, error) {
	dir, err := ioutil.TempDir("", "sofa")
	if err != nil {
		return nil, fmt.Errorf("sofautil: failed creating temporary download directory: %v", err)
	}
	w, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("sofautil: failed creating file for download: %v", err)
	}
	return w, nil
}

// downloadHTTP downloads a file from the specified URL and returns
// the path to the downloaded file.
func downloadHTTP(path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("sofautil: %v", err)
	}
	resp, err := http.Get(path)
	if err != nil {
		return "", fmt.Errorf("sofautil: downloading %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sofautil: downloading %s: %s", path, resp.Status)
	}
	w, err := tempFile(baseName(u.Path))
	if err != nil {
		return "", err
	}
	defer w.Close()
	if _, err = io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("sofautil: downloading %s: %v", path, err)
	}
	return w.Name(), nil
}

func baseName(p string) string {
	b := path.Base(p)
	if b == "." || b == "/" {
		return "download.sofa"
	}
	return b
}

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// The currently accepted storage providers are "file" for the local filesystem
// (e.g., for testing), "gs" for Google Cloud Storage, and "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("sofautil.OpenBucket: %v", err)
	}
	switch u.Scheme {
	case "file":
		return fileblob.NewBucket(u.Hostname())
	case "gs":
		return gsBucket(ctx, u.Hostname())
	case "s3":
		return s3Bucket(ctx, u.Hostname())
	default:
		return nil, fmt.Errorf("sofautil.OpenBucket: invalid provider %s", u.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See here for information on credentials:
	// https://cloud.google.com/docs/authentication/getting-started
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket. It assumes the following
// environment variables are set: AWS_REGION, AWS_ACCESS_KEY_ID, and
// AWS_SECRET_ACCESS_KEY.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s, err := session.NewSession(c)
	if err != nil {
		return nil, err
	}
	return s3blob.OpenBucket(ctx, s, name)
}

// splitBlob returns the bucket and key of a blob path.
func splitBlob(path string) (bucket, key string, err error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", "", fmt.Errorf("sofautil: parsing url '%s': %v", path, err)
	}
	return u.Scheme + "://" + u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// downloadBlob downloads the specified file from blob storage.
func downloadBlob(ctx context.Context, path string) (string, error) {
	bucketName, key, err := splitBlob(path)
	if err != nil {
		return "", err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return "", err
	}
	r, err := bucket.NewReader(ctx, key)
	if err != nil {
		return "", fmt.Errorf("sofautil: reading %s: %v", path, err)
	}
	defer r.Close()
	w, err := tempFile(baseName(key))
	if err != nil {
		return "", err
	}
	defer w.Close()
	if _, err = io.Copy(w, r); err != nil {
		return "", fmt.Errorf("sofautil: downloading %s: %v", path, err)
	}
	return w.Name(), nil
}

// upload copies the local file to the blob storage location dst.
func upload(ctx context.Context, file, dst string) error {
	r, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("sofautil: opening file '%s' for upload: %v", file, err)
	}
	defer r.Close()
	bucketName, key, err := splitBlob(dst)
	if err != nil {
		return err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("sofautil: opening bucket to upload file '%s': %v", dst, err)
	}
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("sofautil: opening writer to upload file '%s': %v", dst, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("sofautil: uploading file '%s' to '%s': %v", file, dst, err)
	}
	return w.Close()
}
